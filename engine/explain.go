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

package engine

import (
	"fmt"
	"io"
	"strconv"
)

// explainKeys fixes the order of keys in every MarkResult's audit view,
// per §4.6 and §4.10. The field set is a stable contract across versions
var explainKeys = []string{
	"coordinate",
	"anchor_tag",
	"anchor_commit",
	"anchor_value",
	"distance",
	"day_delta",
	"same_day_index",
	"timezone",
	"remote_status",
	"branch",
}

// explainBuilder assembles an ordered explain record, rendering absent
// values as the empty string rather than omitting them
type explainBuilder struct {
	values map[string]string
}

func newExplainBuilder() *explainBuilder {
	return &explainBuilder{values: make(map[string]string, len(explainKeys))}
}

func (b *explainBuilder) set(key, value string) {
	b.values[key] = value
}

func (b *explainBuilder) setInt(key string, value int64) {
	b.set(key, strconv.FormatInt(value, 10))
}

func (b *explainBuilder) build() []ExplainEntry {
	entries := make([]ExplainEntry, 0, len(explainKeys))
	for _, key := range explainKeys {
		entries = append(entries, ExplainEntry{Key: key, Value: b.values[key]})
	}
	return entries
}

// WriteExplain renders entries as one key=value line per entry, with no
// spaces around '=' and no quoting, so that consumers can parse it with
// a trivial splitter
func WriteExplain(w io.Writer, entries []ExplainEntry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s=%s\n", entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}
