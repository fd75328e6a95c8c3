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

package gitcli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/purpleclay/tidemark/internal/gitcli"
	"github.com/purpleclay/tidemark/internal/gittest"
	"github.com/purpleclay/tidemark/internal/providertest"
)

func TestNewProviderGitFound(t *testing.T) {
	provider, err := gitcli.NewProvider()

	require.NoError(t, err)
	require.NotNil(t, provider)
}

func TestProviderContract(t *testing.T) {
	providertest.Run(t, gittest.Harness{})
}

func TestListRemoteTagsDistinguishesAnnotated(t *testing.T) {
	repo := gittest.InitRepository(t)

	annotated := repo.CommitAt(t, "annotated release", 1704067200)
	_ = annotated
	repo.TagAnnotated(t, "v1", "release v1")

	lightweight := repo.CommitAt(t, "lightweight release", 1704070800)
	_ = lightweight
	repo.Tag(t, "v2")

	repo.PushTags(t)

	provider := repo.Provider(t)
	tags, err := provider.ListRemoteTags(gittest.DefaultOrigin, "v")
	require.NoError(t, err)
	require.Len(t, tags, 2)

	byName := map[string]bool{}
	for _, tag := range tags {
		byName[tag.Name] = tag.Annotated
	}

	require.True(t, byName["v1"])
	require.False(t, byName["v2"])
}
