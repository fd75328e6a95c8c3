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

// CacheStore provides optional memoization of tag lists and anchor
// selections, keyed by a caller-supplied digest (see pkg/tmcache for how
// the digest is derived from policy). It is a
// pure performance layer: the engine must produce identical MarkResults
// whether or not a CacheStore is supplied, or whether any given lookup
// hits or misses
type CacheStore interface {
	// CandidateSet fetches a previously stored candidate set for key,
	// reporting false if absent. In remote mode, callers must bypass
	// this lookup for tag-listing purposes so that remote drift is
	// always observed; see Engine.loadCandidates in engine.go
	CandidateSet(key string) ([]ReleaseTag, bool)

	// PutCandidateSet stores the candidate set for key
	PutCandidateSet(key string, candidates []ReleaseTag) error

	// AnchorSelection fetches a previously stored selection for the
	// pair (key, targetID), reporting false if absent
	AnchorSelection(key, targetID string) (AnchorSelection, bool)

	// PutAnchorSelection stores the selection for the pair
	// (key, targetID)
	PutAnchorSelection(key, targetID string, selection AnchorSelection) error
}

// noopCache is a CacheStore that never remembers anything. It is used
// whenever a resolution runs with caching disabled, so the engine's
// control flow never needs a nil check
type noopCache struct{}

func (noopCache) CandidateSet(string) ([]ReleaseTag, bool) { return nil, false }

func (noopCache) PutCandidateSet(string, []ReleaseTag) error { return nil }

func (noopCache) AnchorSelection(string, string) (AnchorSelection, bool) {
	return AnchorSelection{}, false
}

func (noopCache) PutAnchorSelection(string, string, AnchorSelection) error { return nil }
