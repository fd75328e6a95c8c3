/*
Copyright (c) 2023 Purple Clay

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package tagparse recognizes release tag names of the form
// <prefix><digits> and extracts the anchor integer they encode.
package tagparse

import (
	"strconv"

	"github.com/purpleclay/chomp"
)

// Parse reports whether name is a release tag under prefix: name must
// equal prefix followed by one or more ASCII digits, with nothing left
// over. Leading zeros are accepted; "v01" parses to anchor value 1. Any
// other name is rejected, which is not treated as an error: a tag simply
// isn't a release tag
func Parse(name, prefix string) (anchorValue uint64, ok bool) {
	rem, _, err := chomp.Tag(prefix)(name)
	if err != nil {
		return 0, false
	}

	rem, digits, err := chomp.While(chomp.IsDigit)(rem)
	if err != nil || digits == "" || rem != "" {
		return 0, false
	}

	val, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}

	return val, true
}

// Format renders the canonical, leading-zero-free tag name for
// anchorValue under prefix. Format(Parse(name, prefix)) reproduces an
// equivalent (though not necessarily byte-identical, if name had
// leading zeros) accepted name, demonstrating the round-trip property
// required of the grammar
func Format(prefix string, anchorValue uint64) string {
	return prefix + strconv.FormatUint(anchorValue, 10)
}
