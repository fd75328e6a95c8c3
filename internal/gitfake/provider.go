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

// Package gitfake implements engine.GitProvider entirely in memory, so
// the engine and the providertest fixture suite can run against a
// scripted history without shelling out to a real git client
package gitfake

import (
	"fmt"
	"sort"

	"github.com/purpleclay/tidemark/engine"
)

// Commit describes one node in a scripted, single-parent history
type Commit struct {
	ID        string
	Parent    string
	Timestamp int64
}

// Provider is a builder and engine.GitProvider over a scripted history.
// It has no concurrency guarantees beyond those of a plain map: build the
// history up front, then treat the Provider as read-only
type Provider struct {
	commits map[string]Commit
	order   []string
	head    string
	local   []engine.TagRef
	remote  []engine.TagRef
	paths   map[string]string // path -> commit id of its last modification
}

// New returns an empty Provider with no commits
func New() *Provider {
	return &Provider{
		commits: map[string]Commit{},
		paths:   map[string]string{},
	}
}

// AddCommit records a commit with its single parent ("" for a root
// commit). Commits must be added in ancestry order (parents before
// children)
func (p *Provider) AddCommit(id, parent string, timestamp int64) *Provider {
	p.commits[id] = Commit{ID: id, Parent: parent, Timestamp: timestamp}
	p.order = append(p.order, id)
	return p
}

// SetHead designates the commit HEAD resolves to
func (p *Provider) SetHead(id string) *Provider {
	p.head = id
	return p
}

// AddLocalTag registers a local tag against commitID
func (p *Provider) AddLocalTag(name, commitID string, annotated bool) *Provider {
	p.local = append(p.local, engine.TagRef{Name: name, CommitID: commitID, Annotated: annotated, Source: engine.Local})
	return p
}

// AddRemoteTag registers a tag as if advertised by a remote
func (p *Provider) AddRemoteTag(name, commitID string, annotated bool) *Provider {
	p.remote = append(p.remote, engine.TagRef{Name: name, CommitID: commitID, Annotated: annotated, Source: engine.Remote})
	return p
}

// SetLastModified records the commit that last touched path, for
// LastModifyingCommit
func (p *Provider) SetLastModified(path, commitID string) *Provider {
	p.paths[path] = commitID
	return p
}

func (p *Provider) commitInfo(id string) (engine.CommitInfo, bool) {
	c, ok := p.commits[id]
	if !ok {
		return engine.CommitInfo{}, false
	}
	return engine.CommitInfo{ID: c.ID, Timestamp: c.Timestamp}, true
}

// HeadCommit returns the commit designated by SetHead
func (p *Provider) HeadCommit() (engine.CommitInfo, error) {
	return p.ResolveCommit("HEAD")
}

// ResolveCommit resolves "HEAD" or a literal commit id
func (p *Provider) ResolveCommit(rev string) (engine.CommitInfo, error) {
	if rev == "HEAD" {
		rev = p.head
	}

	c, ok := p.commitInfo(rev)
	if !ok {
		return engine.CommitInfo{}, fmt.Errorf("unknown revision %q", rev)
	}
	return c, nil
}

// CommitExists reports whether rev names a known commit
func (p *Provider) CommitExists(rev string) bool {
	if rev == "HEAD" {
		rev = p.head
	}
	_, ok := p.commits[rev]
	return ok
}

func hasPrefix(name, prefix string) bool {
	return len(name) >= len(prefix) && name[:len(prefix)] == prefix
}

// ListLocalTags returns every registered local tag matching prefix
func (p *Provider) ListLocalTags(prefix string) ([]engine.TagRef, error) {
	var out []engine.TagRef
	for _, t := range p.local {
		if hasPrefix(t.Name, prefix) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListRemoteTags returns every registered remote tag matching prefix.
// remote is accepted but ignored, since a fake history has only one
// remote view
func (p *Provider) ListRemoteTags(remote, prefix string) ([]engine.TagRef, error) {
	var out []engine.TagRef
	for _, t := range p.remote {
		if hasPrefix(t.Name, prefix) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ancestryChain walks from id back to the root, inclusive of id
func (p *Provider) ancestryChain(id string) []string {
	var chain []string
	for id != "" {
		chain = append(chain, id)
		c, ok := p.commits[id]
		if !ok {
			break
		}
		id = c.Parent
	}
	return chain
}

// IsAncestor reports whether a is d or an ancestor of d
func (p *Provider) IsAncestor(a, d string) (bool, error) {
	for _, id := range p.ancestryChain(d) {
		if id == a {
			return true, nil
		}
	}
	return false, nil
}

// betweenExclusiveInclusive returns the commits on (a, d], oldest first
func (p *Provider) betweenExclusiveInclusive(a, d string) ([]engine.CommitInfo, error) {
	if _, ok := p.commits[d]; !ok {
		return nil, fmt.Errorf("unknown revision %q", d)
	}

	chain := p.ancestryChain(d)

	var ids []string
	for _, id := range chain {
		if id == a {
			break
		}
		ids = append(ids, id)
	}

	commits := make([]engine.CommitInfo, 0, len(ids))
	for _, id := range ids {
		info, _ := p.commitInfo(id)
		commits = append(commits, info)
	}

	sort.Slice(commits, func(i, j int) bool {
		if commits[i].Timestamp != commits[j].Timestamp {
			return commits[i].Timestamp < commits[j].Timestamp
		}
		return commits[i].ID < commits[j].ID
	})

	return commits, nil
}

// CommitDistance counts the commits on (a, d]
func (p *Provider) CommitDistance(a, d string) (uint32, error) {
	commits, err := p.betweenExclusiveInclusive(a, d)
	if err != nil {
		return 0, err
	}
	return uint32(len(commits)), nil
}

// AncestryPathCommits returns every commit on (a, d]
func (p *Provider) AncestryPathCommits(a, d string) ([]engine.CommitInfo, error) {
	return p.betweenExclusiveInclusive(a, d)
}

// LastModifyingCommit returns the commit registered via SetLastModified
func (p *Provider) LastModifyingCommit(path string, followRenames bool) (engine.CommitInfo, error) {
	id, ok := p.paths[path]
	if !ok {
		return engine.CommitInfo{}, fmt.Errorf("path %q is unknown to history", path)
	}

	c, ok := p.commitInfo(id)
	if !ok {
		return engine.CommitInfo{}, fmt.Errorf("unknown revision %q", id)
	}
	return c, nil
}
