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

// Package scan splits raw output from the git plumbing commands into
// records, the way gitz's own scan package splits diff output
package scan

import "bytes"

// RecordSep is written between commit records by every --format string
// gitcli builds, so a record can never be split mid-commit even when a
// commit's fields (a path, say) contain an embedded newline
const RecordSep = '\x1e'

// FieldSep separates fields within a single record
const FieldSep = '\x1f'

// Records is a bufio.SplitFunc that splits on RecordSep, dropping the
// separator and trimming leading and trailing newlines from each token
func Records(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, RecordSep); i >= 0 {
		return i + 1, trimSep(data[:i]), nil
	}

	if atEOF {
		return len(data), trimSep(data), nil
	}

	return 0, nil, nil
}

func trimSep(data []byte) []byte {
	data = bytes.Trim(data, "\n")
	return data
}
