package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreKeyDiffersByLocalOnly(t *testing.T) {
	e := &Engine{cacheKey: "base"}

	localOnlyKey := e.storeKey(true)
	remoteAwareKey := e.storeKey(false)

	assert.NotEqual(t, localOnlyKey, remoteAwareKey,
		"a local-only resolution and a remote-aware resolution must never share a cache entry")
}

// spyCache records every key it is asked to store or fetch under,
// without actually persisting anything
type spyCache struct {
	candidateKeys []string
}

func (c *spyCache) CandidateSet(string) ([]ReleaseTag, bool) { return nil, false }

func (c *spyCache) PutCandidateSet(key string, _ []ReleaseTag) error {
	c.candidateKeys = append(c.candidateKeys, key)
	return nil
}

func (c *spyCache) AnchorSelection(string, string) (AnchorSelection, bool) {
	return AnchorSelection{}, false
}

func (c *spyCache) PutAnchorSelection(string, string, AnchorSelection) error { return nil }

func TestLoadCandidatesUsesDistinctKeysPerLocalOnlyMode(t *testing.T) {
	p := selectorFakeProvider{ancestors: map[string]bool{}, distances: map[string]uint32{}}
	spy := &spyCache{}

	e := &Engine{
		provider: p,
		cache:    spy,
		cfg:      resolvedConfig{tagPrefix: "v", remoteEnabled: false},
		cacheKey: "cfg-digest",
	}

	_, _, _, err := e.loadCandidates(true)
	assert.NoError(t, err)
	_, _, _, err = e.loadCandidates(false)
	assert.NoError(t, err)

	assert.Len(t, spy.candidateKeys, 2)
	assert.NotEqual(t, spy.candidateKeys[0], spy.candidateKeys[1])
}
