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

const selectAnchorOp = "select_anchor"

// selectAnchor restricts candidates to those whose anchor commit is an
// ancestor of target, then picks the single minimum under the total
// order of §4.5:
//  1. distance ascending
//  2. anchor_value descending
//  3. tag name ascending (byte order)
//  4. tag commit id ascending (byte order)
func selectAnchor(provider GitProvider, candidates []ReleaseTag, target CommitInfo) (AnchorSelection, error) {
	var survivors []ReleaseTag
	for _, c := range candidates {
		ancestor, err := provider.IsAncestor(c.AnchorCommit.ID, target.ID)
		if err != nil {
			return AnchorSelection{}, wrapError(err, RepositoryAccess, selectAnchorOp, "failed to check ancestry")
		}
		if ancestor {
			survivors = append(survivors, c)
		}
	}

	if len(survivors) == 0 {
		return AnchorSelection{}, newError(NoReleaseAnchor, selectAnchorOp,
			"no candidate release tag is an ancestor of the target")
	}

	scoredCandidates := make([]scoredCandidate, 0, len(survivors))
	for _, c := range survivors {
		distance, err := provider.CommitDistance(c.AnchorCommit.ID, target.ID)
		if err != nil {
			return AnchorSelection{}, wrapError(err, RepositoryAccess, selectAnchorOp, "failed to compute commit distance")
		}
		scoredCandidates = append(scoredCandidates, scoredCandidate{release: c, distance: distance})
	}

	best := scoredCandidates[0]
	for _, candidate := range scoredCandidates[1:] {
		if lessAnchor(candidate, best) {
			best = candidate
		}
	}

	return AnchorSelection{Release: best.release, Distance: best.distance}, nil
}

type scoredCandidate struct {
	release  ReleaseTag
	distance uint32
}

// lessAnchor reports whether a sorts strictly before b under the §4.5
// total order
func lessAnchor(a, b scoredCandidate) bool {
	if a.distance != b.distance {
		return a.distance < b.distance
	}

	if a.release.AnchorValue != b.release.AnchorValue {
		return a.release.AnchorValue > b.release.AnchorValue
	}

	if a.release.Tag.Name != b.release.Tag.Name {
		return a.release.Tag.Name < b.release.Tag.Name
	}

	return a.release.AnchorCommit.ID < b.release.AnchorCommit.ID
}
