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

import "fmt"

// ReleaseTag is a TagRef that has survived the prefix, digit-parse, and
// annotation filters of the release loader
type ReleaseTag struct {
	// AnchorValue is the unsigned integer parsed from the tag name's
	// digit suffix
	AnchorValue uint64

	// Tag is the underlying reference this release tag was built from
	Tag TagRef

	// AnchorCommit is the commit the tag ultimately resolves to
	AnchorCommit CommitInfo
}

// AnchorSelection is the single release tag chosen as the origin for a
// resolution, along with its distance from the target
type AnchorSelection struct {
	// Release is the chosen anchor
	Release ReleaseTag

	// Distance is the number of commits in (Release.AnchorCommit, target]
	// along the first-parent-respecting ancestry path
	Distance uint32
}

// RemoteLoadStatus records how the candidate set for a resolution was
// assembled, and is surfaced verbatim in the explain record
type RemoteLoadStatus string

const (
	// RemoteOK indicates the remote was queried successfully and its
	// tags were merged into the candidate set
	RemoteOK RemoteLoadStatus = "remote-ok"

	// FallbackLocal indicates the remote query failed but
	// fallback_to_local allowed resolution to continue with only
	// local tags
	FallbackLocal RemoteLoadStatus = "fallback-local"

	// LocalOnly indicates the remote was never queried, either because
	// local_only was requested or the configured strategy disables it
	LocalOnly RemoteLoadStatus = "local-only"
)

// MarkRequest describes a single resolution
type MarkRequest struct {
	// TargetRev is any revision the GitProvider can resolve: a branch,
	// tag, or commit identifier
	TargetRev string

	// LocalOnly forces resolution to skip any remote tag refresh,
	// regardless of the configured remote strategy
	LocalOnly bool

	// MetadataSuffix, if non-empty, overrides config.output.metadata_suffix
	// for this resolution. It never influences (x,y,z) or anchor selection
	MetadataSuffix string
}

// Coordinate is the resolved version coordinate: an anchor value, a
// day-delta, a same-day index, and an optional metadata suffix
type Coordinate struct {
	X      uint64
	Y      uint32
	Z      uint32
	Suffix string
}

// String renders the coordinate per the §6 grammar: x.y.z[.suffix],
// with no leading zeros, no spaces, and no trailing newline
func (c Coordinate) String() string {
	if c.Suffix == "" {
		return fmt.Sprintf("%d.%d.%d", c.X, c.Y, c.Z)
	}
	return fmt.Sprintf("%d.%d.%d.%s", c.X, c.Y, c.Z, c.Suffix)
}

// ExplainEntry is a single ordered key/value pair in a MarkResult's
// audit view
type ExplainEntry struct {
	Key   string
	Value string
}

// MarkResult is the output of a single resolution: a coordinate and its
// ordered explain record. It is constructed once and discarded by the
// caller; it carries no behavior beyond rendering
type MarkResult struct {
	Coordinate Coordinate
	Explain    []ExplainEntry
}
