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

// Package gittest bootstraps a throwaway bare-repository-plus-clone pair
// on disk, the way gitz's own gittest package does, generalized here so
// tests can backdate commits and seed annotated or lightweight release
// tags at precise commits
package gittest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/purpleclay/tidemark/internal/gitcli"
)

const (
	// DefaultBranch is the branch the bare and cloned repository are
	// initialized with
	DefaultBranch = "main"

	// DefaultOrigin is the remote name the clone tracks
	DefaultOrigin = "origin"

	// DefaultAuthorName is written to the clone's local git config
	DefaultAuthorName = "tidemark"

	// DefaultAuthorEmail is written to the clone's local git config
	DefaultAuthorEmail = "tidemark@purpleclay.dev"

	bareRepositoryName   = "origin.git"
	clonedRepositoryName = "work"
)

// Repository is a bare repository (the "remote") plus a clone of it (the
// "local" working directory), both rooted under a single t.TempDir()
type Repository struct {
	Dir     string
	BareDir string
}

// InitRepository creates a bare repository and a clone of it, both under
// a temporary directory cleaned up automatically at the end of the test
func InitRepository(t *testing.T) Repository {
	t.Helper()

	root := t.TempDir()
	bareDir := root + "/" + bareRepositoryName
	cloneDir := root + "/" + clonedRepositoryName

	mustExecIn(t, root, fmt.Sprintf("git init --bare --initial-branch %s %s", DefaultBranch, bareRepositoryName))
	mustExecIn(t, root, fmt.Sprintf("git clone %s %s", bareDir, clonedRepositoryName))

	repo := Repository{Dir: cloneDir, BareDir: bareDir}
	repo.execIn(t, "git config user.name "+DefaultAuthorName)
	repo.execIn(t, "git config user.email "+DefaultAuthorEmail)

	// an empty bare repository has no HEAD to push against until a first
	// commit lands on the configured default branch
	repo.CommitAt(t, "root", 0)
	mustExecIn(t, cloneDir, fmt.Sprintf("git push %s %s", DefaultOrigin, DefaultBranch))

	return repo
}

func (r Repository) execIn(t *testing.T, cmd string) (string, error) {
	t.Helper()
	return execIn(r.Dir, cmd)
}

func (r Repository) mustExecIn(t *testing.T, cmd string) string {
	t.Helper()
	out, err := r.execIn(t, cmd)
	require.NoError(t, err)
	return out
}

func execIn(dir, cmd string) (string, error) {
	parsed, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	r, err := interp.New(interp.StdIO(os.Stdin, &buf, &buf), interp.Dir(dir))
	if err != nil {
		return "", err
	}

	if err := r.Run(context.Background(), parsed); err != nil {
		return "", fmt.Errorf("git command failed: %s: %s", cmd, strings.TrimSuffix(buf.String(), "\n"))
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func mustExecIn(t *testing.T, dir, cmd string) string {
	t.Helper()
	out, err := execIn(dir, cmd)
	require.NoError(t, err)
	return out
}

// CommitAt creates an empty, backdated commit and returns its full id.
// timestamp is interpreted as Unix seconds UTC and is written to both the
// author and committer dates, so the commit's history matches a fixture
// exactly regardless of when the test runs
func (r Repository) CommitAt(t *testing.T, message string, timestamp int64) string {
	t.Helper()

	date := fmt.Sprintf("%d +0000", timestamp)
	cmd := fmt.Sprintf(
		`GIT_AUTHOR_DATE='%s' GIT_COMMITTER_DATE='%s' git commit --allow-empty -m '%s'`,
		date, date, message)
	r.mustExecIn(t, cmd)

	return r.mustExecIn(t, "git rev-parse HEAD")
}

// Tag creates a lightweight tag at HEAD
func (r Repository) Tag(t *testing.T, name string) {
	t.Helper()
	r.mustExecIn(t, fmt.Sprintf("git tag '%s'", name))
}

// TagAnnotated creates an annotated tag at HEAD
func (r Repository) TagAnnotated(t *testing.T, name, msg string) {
	t.Helper()
	r.mustExecIn(t, fmt.Sprintf("git tag -a '%s' -m '%s'", name, msg))
}

// PushTags pushes every local tag to the bare repository, simulating
// tags that have already reached a remote
func (r Repository) PushTags(t *testing.T) {
	t.Helper()
	r.mustExecIn(t, fmt.Sprintf("git push %s --tags", DefaultOrigin))
}

// CheckoutDetached moves HEAD to commit without updating any branch,
// so a tag can be created against an arbitrary point in history
func (r Repository) CheckoutDetached(t *testing.T, commit string) {
	t.Helper()
	r.mustExecIn(t, fmt.Sprintf("git checkout --detach '%s'", commit))
}

// CheckoutBranch moves HEAD back onto branch
func (r Repository) CheckoutBranch(t *testing.T, branch string) {
	t.Helper()
	r.mustExecIn(t, fmt.Sprintf("git checkout '%s'", branch))
}

// DeleteLocalTag removes a tag from the clone only, leaving any pushed
// copy on the bare repository untouched. Combined with PushTags, this
// builds a tag visible only to ListRemoteTags
func (r Repository) DeleteLocalTag(t *testing.T, name string) {
	t.Helper()
	r.mustExecIn(t, fmt.Sprintf("git tag -d '%s'", name))
}

// Provider returns a gitcli.Provider rooted at the clone's working
// directory
func (r Repository) Provider(t *testing.T) *gitcli.Provider {
	t.Helper()

	p, err := gitcli.NewProvider(gitcli.WithDir(r.Dir))
	require.NoError(t, err)
	return p
}
