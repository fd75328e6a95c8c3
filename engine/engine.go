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

// Package engine implements the TideMark resolution core: the rules and
// algorithms that map the history of a commit into a reproducible
// version coordinate. See SPEC_FULL.md §4.6 for the control flow this
// package assembles.
package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/purpleclay/tidemark/internal/timepolicy"
	"github.com/purpleclay/tidemark/pkg/tmconfig"
)

// resolvedConfig is the subset of tmconfig.Config the engine needs,
// flattened and pre-parsed so loader.go and engine.go don't repeat
// validation logic
type resolvedConfig struct {
	tagPrefix        string
	requireAnnotated bool
	timezone         timepolicy.Policy
	remoteEnabled    bool
	remoteName       string
	fallbackToLocal  bool
	cacheEnabled     bool
	metadataSuffix   string
	followRenames    bool
}

func resolveConfig(cfg tmconfig.Config) (resolvedConfig, error) {
	tz, err := timepolicy.Parse(cfg.Time.Timezone)
	if err != nil {
		return resolvedConfig{}, wrapError(err, ConfigParse, "resolve_config", "invalid time.timezone")
	}

	prefix := cfg.Release.TagPrefix
	if prefix == "" {
		prefix = "v"
	}

	remoteName := cfg.Remote.Name
	if remoteName == "" {
		remoteName = "origin"
	}

	return resolvedConfig{
		tagPrefix:        prefix,
		requireAnnotated: cfg.Release.RequireAnnotatedTags,
		timezone:         tz,
		remoteEnabled:    cfg.Remote.Strategy != tmconfig.LocalOnlyStrategy,
		remoteName:       remoteName,
		fallbackToLocal:  cfg.Remote.FallbackToLocal,
		cacheEnabled:     cfg.Cache.Enabled,
		metadataSuffix:   cfg.Output.MetadataSuffix,
		followRenames:    cfg.Output.FollowRenames,
	}, nil
}

// Engine resolves version coordinates against a single repository. It
// holds no mutable state of its own beyond its configured collaborators;
// every call to ResolveMark or ResolveFile is independent and safe to
// repeat
type Engine struct {
	provider GitProvider
	cache    CacheStore
	cfg      resolvedConfig
	cacheKey string
}

// New constructs an Engine from a Git provider, a configuration record,
// and an optional cache store. Passing a nil cache, or a cfg with
// Cache.Enabled false, disables memoization without changing any
// resolved output
func New(provider GitProvider, cfg tmconfig.Config, cache CacheStore, cacheKey string) (*Engine, error) {
	resolved, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	if cache == nil || !resolved.cacheEnabled {
		cache = noopCache{}
	}

	return &Engine{provider: provider, cache: cache, cfg: resolved, cacheKey: cacheKey}, nil
}

// storeKey folds the per-request local_only flag into the caller-supplied
// cacheKey, per §4.8's fixed digest field set. cacheKey itself is a
// config-level digest computed once at construction (see pkg/tmcache),
// before any individual request's local_only value is known, so it
// cannot carry that bit on its own; this is where the two meet
func (e *Engine) storeKey(localOnly bool) string {
	return e.cacheKey + "\x1f" + strconv.FormatBool(localOnly)
}

const resolveMarkOp = "resolve_mark"

// ResolveMark resolves a single MarkRequest into a MarkResult, following
// the control flow of §4.6: load candidates, select an anchor, compute
// the day delta, compute the same-day index, and assemble the
// coordinate and explain record
func (e *Engine) ResolveMark(req MarkRequest) (MarkResult, error) {
	target, err := e.provider.ResolveCommit(req.TargetRev)
	if err != nil {
		return MarkResult{}, wrapError(err, UnknownRevision, resolveMarkOp,
			fmt.Sprintf("cannot resolve revision %q", req.TargetRev))
	}

	candidates, status, bypassCache, err := e.loadCandidates(req.LocalOnly)
	if err != nil {
		return MarkResult{}, err
	}

	// The anchor-selection cache shares the candidate-set cache's
	// bypass rule: in remote mode, a stale selection could otherwise
	// hide drift that a fresh candidate set would have revealed. Both
	// caches are also keyed per local_only mode via storeKey, so the
	// two modes can never read or write each other's entries
	var selection AnchorSelection
	cached, hit := false, false
	if !bypassCache {
		selection, hit = e.cache.AnchorSelection(e.storeKey(req.LocalOnly), target.ID)
		cached = hit
	}

	if !cached {
		selection, err = selectAnchor(e.provider, candidates, target)
		if err != nil {
			return MarkResult{}, err
		}
		if !bypassCache {
			_ = e.cache.PutAnchorSelection(e.storeKey(req.LocalOnly), target.ID, selection)
		}
	}

	return e.assembleResult(target, selection, status, req.MetadataSuffix)
}

const resolveFileOp = "resolve_file"

// ResolveFile maps path to its last-modifying commit, reachable from
// HEAD, then delegates to ResolveMark
func (e *Engine) ResolveFile(path string, req MarkRequest) (MarkResult, error) {
	commit, err := e.provider.LastModifyingCommit(path, e.cfg.followRenames)
	if err != nil {
		return MarkResult{}, wrapError(err, UnknownRevision, resolveFileOp,
			fmt.Sprintf("path %q is unknown to history", path))
	}

	req.TargetRev = commit.ID
	return e.ResolveMark(req)
}

// loadCandidates consults the cache for a previously merged candidate
// set unless the engine is running in remote mode, in which case the
// tag-listing cache is bypassed so that remote drift is always observed
// (§4.8, §9)
func (e *Engine) loadCandidates(localOnly bool) (candidates []ReleaseTag, status RemoteLoadStatus, bypassCache bool, err error) {
	bypassCache = !localOnly && e.cfg.remoteEnabled

	if !bypassCache {
		if cached, ok := e.cache.CandidateSet(e.storeKey(localOnly)); ok {
			return cached, LocalOnly, bypassCache, nil
		}
	}

	candidates, status, err = loadReleaseTags(e.provider, e.cfg, localOnly)
	if err != nil {
		return nil, "", bypassCache, err
	}

	if !bypassCache {
		_ = e.cache.PutCandidateSet(e.storeKey(localOnly), candidates)
	}

	return candidates, status, bypassCache, nil
}

const dayDeltaOp = "day_delta"

const sameDayIndexOp = "same_day_index"

func (e *Engine) assembleResult(target CommitInfo, selection AnchorSelection, status RemoteLoadStatus, suffixOverride string) (MarkResult, error) {
	anchor := selection.Release.AnchorCommit

	y := e.cfg.timezone.DayDelta(anchor.Timestamp, target.Timestamp)
	if y < 0 {
		return MarkResult{}, newError(TimestampAnomaly, dayDeltaOp,
			"anchor's calendar date is strictly later than the target's")
	}

	var z uint32
	if target.ID == anchor.ID {
		z = 0
	} else {
		index, err := e.sameDayIndex(anchor, target)
		if err != nil {
			return MarkResult{}, err
		}
		z = index
	}

	suffix := suffixOverride
	if suffix == "" {
		suffix = e.cfg.metadataSuffix
	}

	coordinate := Coordinate{
		X:      selection.Release.AnchorValue,
		Y:      uint32(y),
		Z:      z,
		Suffix: suffix,
	}

	builder := newExplainBuilder()
	builder.set("coordinate", coordinate.String())
	builder.set("anchor_tag", selection.Release.Tag.Name)
	builder.set("anchor_commit", anchor.ID)
	builder.setInt("anchor_value", int64(selection.Release.AnchorValue))
	builder.setInt("distance", int64(selection.Distance))
	builder.setInt("day_delta", y)
	builder.setInt("same_day_index", int64(z))
	builder.set("timezone", e.cfg.timezone.String())
	builder.set("remote_status", string(status))
	builder.set("branch", "")

	return MarkResult{Coordinate: coordinate, Explain: builder.build()}, nil
}

// sameDayIndex computes the one-based position of target among the
// commits on the ancestry path (anchor, target] that share its calendar
// date, ordered by (timestamp ascending, id ascending)
func (e *Engine) sameDayIndex(anchor, target CommitInfo) (uint32, error) {
	path, err := e.provider.AncestryPathCommits(anchor.ID, target.ID)
	if err != nil {
		return 0, wrapError(err, RepositoryAccess, sameDayIndexOp, "failed to walk ancestry path")
	}

	targetDate := e.cfg.timezone.DateOf(target.Timestamp)

	var sameDay []CommitInfo
	for _, c := range path {
		if e.cfg.timezone.DateOf(c.Timestamp) == targetDate {
			sameDay = append(sameDay, c)
		}
	}

	sort.Slice(sameDay, func(i, j int) bool {
		if sameDay[i].Timestamp != sameDay[j].Timestamp {
			return sameDay[i].Timestamp < sameDay[j].Timestamp
		}
		return sameDay[i].ID < sameDay[j].ID
	})

	for i, c := range sameDay {
		if c.ID == target.ID {
			return uint32(i + 1), nil
		}
	}

	return 0, newError(InternalInvariant, sameDayIndexOp,
		"target commit missing from its own ancestry path's same-day set")
}
