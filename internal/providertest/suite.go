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

// Package providertest holds a single fixture-driven scenario suite that
// runs against any engine.GitProvider implementation. Both internal/gitfake
// and internal/gitcli (via internal/gittest) satisfy the contract defined
// in engine.GitProvider, and this suite is the parity check that holds
// them to the same behavior
package providertest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpleclay/tidemark/engine"
)

// CommitSpec describes one commit in a fixture's linear history
type CommitSpec struct {
	Name      string
	Parent    string
	Timestamp int64
}

// TagSpec describes one tag a fixture seeds against a commit
type TagSpec struct {
	Name      string
	OnCommit  string
	Annotated bool
}

// Fixture is a small, self-contained scripted history
type Fixture struct {
	Commits []CommitSpec
	Head    string
	Tags    []TagSpec
}

// Harness builds a fresh engine.GitProvider from a Fixture, returning
// the provider's real commit id for every symbolic CommitSpec.Name so
// assertions never need to hardcode a SHA
type Harness interface {
	Build(t *testing.T, fixture Fixture) (provider engine.GitProvider, ids map[string]string)
}

func linearFixture() Fixture {
	return Fixture{
		Commits: []CommitSpec{
			{Name: "root", Parent: "", Timestamp: 1704067200},
			{Name: "mid", Parent: "root", Timestamp: 1704070800},
			{Name: "tip", Parent: "mid", Timestamp: 1704157200},
		},
		Head: "tip",
		Tags: []TagSpec{{Name: "v1", OnCommit: "root", Annotated: true}},
	}
}

// Run exercises the engine.GitProvider contract (§4.3) identically
// against whatever harness is passed in
func Run(t *testing.T, harness Harness) {
	t.Run("HeadCommit and ResolveCommit agree with the fixture", func(t *testing.T) {
		provider, ids := harness.Build(t, linearFixture())

		head, err := provider.HeadCommit()
		require.NoError(t, err)
		assert.Equal(t, ids["tip"], head.ID)

		resolved, err := provider.ResolveCommit(ids["mid"])
		require.NoError(t, err)
		assert.Equal(t, ids["mid"], resolved.ID)
	})

	t.Run("CommitExists", func(t *testing.T) {
		provider, ids := harness.Build(t, linearFixture())

		assert.True(t, provider.CommitExists(ids["root"]))
		assert.False(t, provider.CommitExists("0000000000000000000000000000000000000000"))
	})

	t.Run("IsAncestor is directional", func(t *testing.T) {
		provider, ids := harness.Build(t, linearFixture())

		ok, err := provider.IsAncestor(ids["root"], ids["tip"])
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = provider.IsAncestor(ids["tip"], ids["root"])
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("CommitDistance counts commits strictly after the anchor", func(t *testing.T) {
		provider, ids := harness.Build(t, linearFixture())

		distance, err := provider.CommitDistance(ids["root"], ids["tip"])
		require.NoError(t, err)
		assert.Equal(t, uint32(2), distance)

		distance, err = provider.CommitDistance(ids["root"], ids["root"])
		require.NoError(t, err)
		assert.Equal(t, uint32(0), distance)
	})

	t.Run("AncestryPathCommits is ordered oldest first", func(t *testing.T) {
		provider, ids := harness.Build(t, linearFixture())

		path, err := provider.AncestryPathCommits(ids["root"], ids["tip"])
		require.NoError(t, err)
		require.Len(t, path, 2)
		assert.Equal(t, ids["mid"], path[0].ID)
		assert.Equal(t, ids["tip"], path[1].ID)
	})

	t.Run("ListLocalTags resolves an annotated tag to its target commit", func(t *testing.T) {
		provider, ids := harness.Build(t, linearFixture())

		tags, err := provider.ListLocalTags("v")
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "v1", tags[0].Name)
		assert.True(t, tags[0].Annotated)
		assert.Equal(t, ids["root"], tags[0].CommitID)
	})

	t.Run("ListLocalTags filters by prefix", func(t *testing.T) {
		provider, _ := harness.Build(t, linearFixture())

		tags, err := provider.ListLocalTags("nonexistent-")
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}
