package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selectorFakeProvider is a minimal GitProvider stub for exercising
// selectAnchor directly, independent of the Engine's resolution flow
type selectorFakeProvider struct {
	ancestors map[string]bool
	distances map[string]uint32
}

func (p selectorFakeProvider) HeadCommit() (CommitInfo, error)              { return CommitInfo{}, nil }
func (p selectorFakeProvider) ResolveCommit(string) (CommitInfo, error)     { return CommitInfo{}, nil }
func (p selectorFakeProvider) CommitExists(string) bool                    { return true }
func (p selectorFakeProvider) ListLocalTags(string) ([]TagRef, error)      { return nil, nil }
func (p selectorFakeProvider) ListRemoteTags(string, string) ([]TagRef, error) {
	return nil, nil
}
func (p selectorFakeProvider) AncestryPathCommits(string, string) ([]CommitInfo, error) {
	return nil, nil
}
func (p selectorFakeProvider) LastModifyingCommit(string, bool) (CommitInfo, error) {
	return CommitInfo{}, nil
}

func (p selectorFakeProvider) IsAncestor(ancestor, _ string) (bool, error) {
	return p.ancestors[ancestor], nil
}

func (p selectorFakeProvider) CommitDistance(ancestor, _ string) (uint32, error) {
	return p.distances[ancestor], nil
}

func candidate(tagName, commitID string, anchorValue uint64) ReleaseTag {
	return ReleaseTag{
		AnchorValue:  anchorValue,
		Tag:          TagRef{Name: tagName, CommitID: commitID, Annotated: true, Source: Local},
		AnchorCommit: CommitInfo{ID: commitID},
	}
}

func TestSelectAnchorPrefersShorterDistance(t *testing.T) {
	p := selectorFakeProvider{
		ancestors: map[string]bool{"c1": true, "c2": true},
		distances: map[string]uint32{"c1": 5, "c2": 2},
	}
	candidates := []ReleaseTag{candidate("v1", "c1", 1), candidate("v2", "c2", 1)}

	selection, err := selectAnchor(p, candidates, CommitInfo{ID: "target"})
	require.NoError(t, err)
	assert.Equal(t, "v2", selection.Release.Tag.Name)
	assert.Equal(t, uint32(2), selection.Distance)
}

func TestSelectAnchorBreaksTieOnHigherAnchorValue(t *testing.T) {
	p := selectorFakeProvider{
		ancestors: map[string]bool{"c1": true, "c2": true},
		distances: map[string]uint32{"c1": 3, "c2": 3},
	}
	candidates := []ReleaseTag{candidate("v1", "c1", 1), candidate("v2", "c2", 2)}

	selection, err := selectAnchor(p, candidates, CommitInfo{ID: "target"})
	require.NoError(t, err)
	assert.Equal(t, "v2", selection.Release.Tag.Name)
}

func TestSelectAnchorBreaksTieOnTagNameAscending(t *testing.T) {
	p := selectorFakeProvider{
		ancestors: map[string]bool{"cb": true, "ca": true},
		distances: map[string]uint32{"cb": 1, "ca": 1},
	}
	candidates := []ReleaseTag{candidate("v-zebra", "cb", 1), candidate("v-apple", "ca", 1)}

	selection, err := selectAnchor(p, candidates, CommitInfo{ID: "target"})
	require.NoError(t, err)
	assert.Equal(t, "v-apple", selection.Release.Tag.Name)
}

func TestSelectAnchorBreaksFinalTieOnCommitIDAscending(t *testing.T) {
	p := selectorFakeProvider{
		ancestors: map[string]bool{"cz": true, "aa": true},
		distances: map[string]uint32{"cz": 1, "aa": 1},
	}
	candidates := []ReleaseTag{candidate("v1", "cz", 1), candidate("v1", "aa", 1)}

	selection, err := selectAnchor(p, candidates, CommitInfo{ID: "target"})
	require.NoError(t, err)
	assert.Equal(t, "aa", selection.Release.Tag.CommitID)
}

func TestSelectAnchorExcludesNonAncestors(t *testing.T) {
	p := selectorFakeProvider{
		ancestors: map[string]bool{"c1": false},
		distances: map[string]uint32{},
	}
	candidates := []ReleaseTag{candidate("v1", "c1", 1)}

	_, err := selectAnchor(p, candidates, CommitInfo{ID: "target"})
	require.Error(t, err)
	assert.Equal(t, NoReleaseAnchor, err.(*Error).Kind)
}

func TestLessAnchorTotalOrder(t *testing.T) {
	a := scoredCandidate{release: candidate("v1", "c1", 2), distance: 1}
	b := scoredCandidate{release: candidate("v2", "c2", 1), distance: 1}
	assert.True(t, lessAnchor(a, b), "higher anchor value sorts first on a distance tie")
	assert.False(t, lessAnchor(b, a))
}
