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

// Package tidemark resolves a deterministic, reproducible version
// coordinate for any commit in a git repository's history, from nothing
// but the shape of an annotated release tag and the calendar dates of
// the commits that follow it. See package engine for the resolution
// core; this package is a thin facade wiring the subprocess git
// provider and the on-disk cache together for the common case of
// resolving against a real repository on disk
package tidemark

import (
	"github.com/purpleclay/tidemark/engine"
	"github.com/purpleclay/tidemark/internal/cachefs"
	"github.com/purpleclay/tidemark/internal/gitcli"
	"github.com/purpleclay/tidemark/pkg/tmcache"
	"github.com/purpleclay/tidemark/pkg/tmconfig"
)

// Version identifies this build for inclusion in the cache digest key,
// so a semantics-changing upgrade never serves a stale cache entry
// written by an older binary
const Version = "0.1.0"

// New validates cfg, then assembles an Engine backed by an installed
// git client at repoDir. Passing an empty cacheDir disables the
// on-disk cache regardless of cfg.Cache.Enabled
func New(cfg tmconfig.Config, repoDir, cacheDir string) (*engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &engine.Error{Kind: engine.ConfigParse, Op: "new", Message: "invalid configuration", Err: err}
	}

	provider, err := gitcli.NewProvider(gitcli.WithDir(repoDir))
	if err != nil {
		return nil, &engine.Error{Kind: engine.RepositoryAccess, Op: "new", Message: "git client unavailable", Err: err}
	}

	var cache engine.CacheStore
	if cacheDir != "" {
		store, err := cachefs.New(cacheDir)
		if err != nil {
			return nil, err
		}
		cache = store
	}

	return engine.New(provider, cfg, cache, tmcache.Key(cfg, Version))
}
