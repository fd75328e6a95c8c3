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

// TagSource identifies where a TagRef was observed
type TagSource int

const (
	// Local indicates the tag was read from the repository's own refs
	Local TagSource = iota

	// Remote indicates the tag was read from a remote's advertised refs
	Remote
)

// String returns a lowercase identifier for the source, used in the
// explain record and in diagnostics
func (s TagSource) String() string {
	if s == Remote {
		return "remote"
	}
	return "local"
}

// CommitInfo is an immutable reference to a single commit: its full
// object name and its committer timestamp
type CommitInfo struct {
	// ID is the full, lowercase, 40-character hex object name as
	// produced by git
	ID string

	// Timestamp is the committer time, in seconds since the Unix epoch
	Timestamp int64
}

// TagRef is a single tag observed from either the local repository or
// a remote
type TagRef struct {
	// Name is the tag's short name, e.g. "v1.4.0" (never "refs/tags/...")
	Name string

	// CommitID is the full object name of the commit the tag (or, for
	// an annotated tag, its underlying commit) ultimately points to
	CommitID string

	// Annotated is true when the tag is a full annotated tag object
	// rather than a lightweight reference
	Annotated bool

	// Source records whether this ref came from the local repository
	// or from a queried remote
	Source TagSource
}

// GitProvider is the read-only surface of Git operations the engine
// consumes. Any implementation, whether shelling out to an installed
// git client or linking a native library, must satisfy the contracts
// documented on each method. No method may mutate objects, refs, the
// index, or the worktree; ListRemoteTags is the only operation
// permitted to write, and only under a scratch ref namespace
type GitProvider interface {
	// HeadCommit returns the current HEAD, whether detached or not
	HeadCommit() (CommitInfo, error)

	// ResolveCommit resolves rev to a CommitInfo. It returns a non-nil
	// error if rev cannot be resolved; the engine reports a target that
	// fails to resolve as an *Error of Kind UnknownRevision
	ResolveCommit(rev string) (CommitInfo, error)

	// CommitExists is a pure probe: it reports whether rev resolves to
	// a commit, without ever returning an error for a missing revision
	CommitExists(rev string) bool

	// ListLocalTags returns every local tag whose name begins with
	// prefix, each with Source set to Local
	ListLocalTags(prefix string) ([]TagRef, error)

	// ListRemoteTags refreshes the provider's view of remote tags
	// matching prefix from the named remote, without mutating any
	// local ref under refs/tags or refs/heads. Implementations may
	// write only under a scratch ref namespace to cache the refresh
	ListRemoteTags(remote, prefix string) ([]TagRef, error)

	// IsAncestor reports whether commit a is a (non-strict) ancestor
	// of commit d
	IsAncestor(a, d string) (bool, error)

	// CommitDistance counts the commits in (a, d] along the
	// first-parent-respecting ancestry path
	CommitDistance(a, d string) (uint32, error)

	// AncestryPathCommits returns every commit in (a, d], each with its
	// committer timestamp, ordered oldest first
	AncestryPathCommits(a, d string) ([]CommitInfo, error)

	// LastModifyingCommit returns the most recent commit, reachable
	// from HEAD, that modified path. If followRenames is true, rename
	// detection follows the file's history across renames
	LastModifyingCommit(path string, followRenames bool) (CommitInfo, error)
}
