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

package gitfake

import (
	"testing"

	"github.com/purpleclay/tidemark/engine"
	"github.com/purpleclay/tidemark/internal/providertest"
)

// Harness builds a Provider from a providertest.Fixture, satisfying
// providertest.Harness. A fixture's symbolic commit names double as
// the Provider's commit ids, since a fake history has no real object
// store to assign shas from
type Harness struct{}

// Build implements providertest.Harness
func (Harness) Build(t *testing.T, fixture providertest.Fixture) (engine.GitProvider, map[string]string) {
	t.Helper()

	p := New()
	ids := make(map[string]string, len(fixture.Commits))
	for _, c := range fixture.Commits {
		p.AddCommit(c.Name, c.Parent, c.Timestamp)
		ids[c.Name] = c.Name
	}
	p.SetHead(ids[fixture.Head])

	for _, tag := range fixture.Tags {
		p.AddLocalTag(tag.Name, ids[tag.OnCommit], tag.Annotated)
	}

	return p, ids
}
