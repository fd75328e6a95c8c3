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

// Package tmconfig defines the configuration record consumed by the
// resolution engine. Loading this record from disk (TOML, YAML, or any
// other serialization) is the responsibility of an external CLI
// boundary; this package only shapes and validates the record itself.
package tmconfig

import (
	"fmt"

	"github.com/purpleclay/tidemark/internal/timepolicy"
)

// RemoteStrategy selects how (or whether) the engine queries a remote
// for tag drift
type RemoteStrategy string

const (
	// LsRemote queries the configured remote for tags on every
	// resolution that isn't local_only
	LsRemote RemoteStrategy = "ls-remote"

	// LocalOnlyStrategy never queries a remote, regardless of the
	// local_only flag on an individual request
	LocalOnlyStrategy RemoteStrategy = "local-only"
)

// ReleaseConfig controls release tag recognition
type ReleaseConfig struct {
	TagPrefix            string `yaml:"tag_prefix"`
	RequireAnnotatedTags bool   `yaml:"require_annotated_tags"`
}

// TimeConfig controls the calendar policy used for day_delta
type TimeConfig struct {
	Timezone string `yaml:"timezone"`
}

// RemoteConfig controls remote tag refresh behavior
type RemoteConfig struct {
	Strategy        RemoteStrategy `yaml:"strategy"`
	Name            string         `yaml:"name"`
	FallbackToLocal bool           `yaml:"fallback_to_local"`
}

// CacheConfig controls the optional memoization layer
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// OutputConfig controls coordinate rendering and file resolution
type OutputConfig struct {
	MetadataSuffix string `yaml:"metadata_suffix"`
	FollowRenames  bool   `yaml:"follow_renames"`
}

// Config is the full recognized configuration record of §6
type Config struct {
	Release ReleaseConfig `yaml:"release"`
	Time    TimeConfig    `yaml:"time"`
	Remote  RemoteConfig  `yaml:"remote"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
}

// Default returns the configuration record populated with the defaults
// fixed by §6
func Default() Config {
	return Config{
		Release: ReleaseConfig{
			TagPrefix:            "v",
			RequireAnnotatedTags: true,
		},
		Time: TimeConfig{
			Timezone: "UTC",
		},
		Remote: RemoteConfig{
			Strategy:        LsRemote,
			Name:            "origin",
			FallbackToLocal: true,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			MetadataSuffix: "",
			FollowRenames:  true,
		},
	}
}

// Validate applies defaults to the zero-valued string fields (tag prefix,
// timezone, remote strategy, remote name) and checks that every
// recognized option is well-formed. Boolean fields are left untouched,
// since a zero bool cannot be told apart from an explicit false. It returns an
// error describing the first problem found; callers surface this as a
// ConfigParse failure
func (c *Config) Validate() error {
	if c.Release.TagPrefix == "" {
		c.Release.TagPrefix = "v"
	}

	if c.Time.Timezone == "" {
		c.Time.Timezone = "UTC"
	}
	if _, err := timepolicy.Parse(c.Time.Timezone); err != nil {
		return fmt.Errorf("time.timezone: %w", err)
	}

	switch c.Remote.Strategy {
	case "":
		c.Remote.Strategy = LsRemote
	case LsRemote, LocalOnlyStrategy:
		// valid
	default:
		return fmt.Errorf("remote.strategy: unrecognized value %q", c.Remote.Strategy)
	}

	if c.Remote.Name == "" {
		c.Remote.Name = "origin"
	}

	return nil
}
