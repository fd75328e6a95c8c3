package tidemark_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/purpleclay/tidemark"
	"github.com/purpleclay/tidemark/engine"
	"github.com/purpleclay/tidemark/internal/gittest"
	"github.com/purpleclay/tidemark/pkg/tmconfig"
)

func TestNewResolvesAgainstARealRepository(t *testing.T) {
	repo := gittest.InitRepository(t)

	anchor := repo.CommitAt(t, "release commit", 1704067200)
	repo.TagAnnotated(t, "v1", "release v1")
	_ = anchor

	repo.CommitAt(t, "a day later", 1704157200)

	cfg := tmconfig.Default()
	cfg.Remote.Strategy = tmconfig.LocalOnlyStrategy

	eng, err := tidemark.New(cfg, repo.Dir, "")
	require.NoError(t, err)

	result, err := eng.ResolveMark(engine.MarkRequest{TargetRev: "HEAD", LocalOnly: true})
	require.NoError(t, err)
	require.Equal(t, "1.1.1", result.Coordinate.String())
}
