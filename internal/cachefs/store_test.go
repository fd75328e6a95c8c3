package cachefs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpleclay/tidemark/engine"
	"github.com/purpleclay/tidemark/internal/cachefs"
)

func newStore(t *testing.T) *cachefs.Store {
	t.Helper()
	store, err := cachefs.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func sampleCandidates() []engine.ReleaseTag {
	return []engine.ReleaseTag{
		{
			AnchorValue: 3,
			Tag:         engine.TagRef{Name: "v3", CommitID: "c1", Annotated: true, Source: engine.Local},
			AnchorCommit: engine.CommitInfo{ID: "c1", Timestamp: 1704067200},
		},
	}
}

func TestCandidateSetMissReturnsFalse(t *testing.T) {
	store := newStore(t)

	_, ok := store.CandidateSet("missing-key")
	assert.False(t, ok)
}

func TestCandidateSetRoundTrip(t *testing.T) {
	store := newStore(t)
	want := sampleCandidates()

	require.NoError(t, store.PutCandidateSet("key-a", want))

	got, ok := store.CandidateSet("key-a")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCandidateSetOverwrite(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.PutCandidateSet("key-a", sampleCandidates()))
	require.NoError(t, store.PutCandidateSet("key-a", nil))

	got, ok := store.CandidateSet("key-a")
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestAnchorSelectionRoundTrip(t *testing.T) {
	store := newStore(t)
	want := engine.AnchorSelection{
		Release:  sampleCandidates()[0],
		Distance: 7,
	}

	require.NoError(t, store.PutAnchorSelection("key-a", "target-1", want))

	got, ok := store.AnchorSelection("key-a", "target-1")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestAnchorSelectionMissReturnsFalse(t *testing.T) {
	store := newStore(t)

	_, ok := store.AnchorSelection("key-a", "unknown-target")
	assert.False(t, ok)
}

func TestNewCreatesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	_, err := cachefs.New(dir)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(dir, "candidates"))
	assert.DirExists(t, filepath.Join(dir, "anchors"))
}
