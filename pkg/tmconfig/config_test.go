package tmconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purpleclay/tidemark/pkg/tmconfig"
)

func TestDefaultMatchesFixedDefaults(t *testing.T) {
	cfg := tmconfig.Default()

	assert.Equal(t, "v", cfg.Release.TagPrefix)
	assert.True(t, cfg.Release.RequireAnnotatedTags)
	assert.Equal(t, "UTC", cfg.Time.Timezone)
	assert.Equal(t, tmconfig.LsRemote, cfg.Remote.Strategy)
	assert.Equal(t, "origin", cfg.Remote.Name)
	assert.True(t, cfg.Remote.FallbackToLocal)
	assert.True(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Output.FollowRenames)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := tmconfig.Default()
	require.NoError(t, cfg.Validate())
}

func TestValidateFillsZeroValuedTagPrefix(t *testing.T) {
	cfg := tmconfig.Default()
	cfg.Release.TagPrefix = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "v", cfg.Release.TagPrefix)
}

func TestValidateFillsZeroValuedTimezone(t *testing.T) {
	cfg := tmconfig.Default()
	cfg.Time.Timezone = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "UTC", cfg.Time.Timezone)
}

func TestValidateRejectsUnparseableTimezone(t *testing.T) {
	cfg := tmconfig.Default()
	cfg.Time.Timezone = "not-a-real-zone/??"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time.timezone")
}

func TestValidateFillsZeroValuedRemoteStrategy(t *testing.T) {
	cfg := tmconfig.Default()
	cfg.Remote.Strategy = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, tmconfig.LsRemote, cfg.Remote.Strategy)
}

func TestValidateRejectsUnrecognizedRemoteStrategy(t *testing.T) {
	cfg := tmconfig.Default()
	cfg.Remote.Strategy = "push-and-pray"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote.strategy")
}

func TestValidateFillsZeroValuedRemoteName(t *testing.T) {
	cfg := tmconfig.Default()
	cfg.Remote.Name = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "origin", cfg.Remote.Name)
}

func TestValidatePreservesLocalOnlyStrategy(t *testing.T) {
	cfg := tmconfig.Default()
	cfg.Remote.Strategy = tmconfig.LocalOnlyStrategy

	require.NoError(t, cfg.Validate())
	assert.Equal(t, tmconfig.LocalOnlyStrategy, cfg.Remote.Strategy)
}
