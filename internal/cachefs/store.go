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

// Package cachefs implements engine.CacheStore on the local filesystem.
// Entries are written atomically (temp file plus rename), the way
// kubernetes-test-infra's greenhouse/diskcache protects its own flat
// key-value store from a reader observing a half-written file
package cachefs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/purpleclay/tidemark/engine"
)

const (
	candidatesDir = "candidates"
	anchorsDir    = "anchors"
	lockFileName  = ".tidemark.lock"
)

// Store is a CacheStore rooted at a single directory on disk. The zero
// value is not usable; construct one with New
type Store struct {
	dir   string
	group singleflight.Group
}

// New returns a Store rooted at dir, creating dir and its subdirectories
// if they don't already exist
func New(dir string) (*Store, error) {
	for _, sub := range []string{candidatesDir, anchorsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o750); err != nil {
			return nil, fmt.Errorf("cachefs: %w", err)
		}
	}

	return &Store{dir: dir}, nil
}

type candidateSetEntry struct {
	AnchorValue   uint64 `yaml:"anchor_value"`
	TagName       string `yaml:"tag_name"`
	TagCommitID   string `yaml:"tag_commit_id"`
	TagAnnotated  bool   `yaml:"tag_annotated"`
	TagSource     string `yaml:"tag_source"`
	AnchorCommit  string `yaml:"anchor_commit_id"`
	AnchorCommitT int64  `yaml:"anchor_commit_timestamp"`
}

type candidateSetFile struct {
	Entries []candidateSetEntry `yaml:"entries"`
}

func toEntry(r engine.ReleaseTag) candidateSetEntry {
	return candidateSetEntry{
		AnchorValue:   r.AnchorValue,
		TagName:       r.Tag.Name,
		TagCommitID:   r.Tag.CommitID,
		TagAnnotated:  r.Tag.Annotated,
		TagSource:     r.Tag.Source.String(),
		AnchorCommit:  r.AnchorCommit.ID,
		AnchorCommitT: r.AnchorCommit.Timestamp,
	}
}

func fromEntry(e candidateSetEntry) engine.ReleaseTag {
	source := engine.Local
	if e.TagSource == engine.Remote.String() {
		source = engine.Remote
	}

	return engine.ReleaseTag{
		AnchorValue: e.AnchorValue,
		Tag: engine.TagRef{
			Name:      e.TagName,
			CommitID:  e.TagCommitID,
			Annotated: e.TagAnnotated,
			Source:    source,
		},
		AnchorCommit: engine.CommitInfo{ID: e.AnchorCommit, Timestamp: e.AnchorCommitT},
	}
}

// CandidateSet implements engine.CacheStore
func (s *Store) CandidateSet(key string) ([]engine.ReleaseTag, bool) {
	var file candidateSetFile
	if !s.readYAML(s.candidatePath(key), &file) {
		return nil, false
	}

	candidates := make([]engine.ReleaseTag, 0, len(file.Entries))
	for _, e := range file.Entries {
		candidates = append(candidates, fromEntry(e))
	}
	return candidates, true
}

// PutCandidateSet implements engine.CacheStore
func (s *Store) PutCandidateSet(key string, candidates []engine.ReleaseTag) error {
	file := candidateSetFile{Entries: make([]candidateSetEntry, 0, len(candidates))}
	for _, c := range candidates {
		file.Entries = append(file.Entries, toEntry(c))
	}

	_, err, _ := s.group.Do("candidates:"+key, func() (any, error) {
		return nil, s.writeYAML(s.candidatePath(key), file)
	})
	return err
}

type anchorSelectionFile struct {
	Candidate candidateSetEntry `yaml:"candidate"`
	Distance  uint32            `yaml:"distance"`
}

// AnchorSelection implements engine.CacheStore
func (s *Store) AnchorSelection(key, targetID string) (engine.AnchorSelection, bool) {
	var file anchorSelectionFile
	if !s.readYAML(s.anchorPath(key, targetID), &file) {
		return engine.AnchorSelection{}, false
	}

	return engine.AnchorSelection{
		Release:  fromEntry(file.Candidate),
		Distance: file.Distance,
	}, true
}

// PutAnchorSelection implements engine.CacheStore
func (s *Store) PutAnchorSelection(key, targetID string, selection engine.AnchorSelection) error {
	file := anchorSelectionFile{
		Candidate: toEntry(selection.Release),
		Distance:  selection.Distance,
	}

	_, err, _ := s.group.Do("anchor:"+key+":"+targetID, func() (any, error) {
		return nil, s.writeYAML(s.anchorPath(key, targetID), file)
	})
	return err
}

func (s *Store) candidatePath(key string) string {
	return filepath.Join(s.dir, candidatesDir, digest(key)+".yaml")
}

func (s *Store) anchorPath(key, targetID string) string {
	return filepath.Join(s.dir, anchorsDir, digest(key+"\x1f"+targetID)+".yaml")
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (s *Store) readYAML(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return yaml.Unmarshal(data, out) == nil
}

// writeYAML writes out to path atomically: encode to a temp file in the
// same directory, fsync, then rename over any existing entry. A rename
// within the same filesystem is atomic, so a concurrent reader never
// observes a partially written file
func (s *Store) writeYAML(path string, in any) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("cachefs: encode entry: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("cachefs: create temp entry: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cachefs: write temp entry: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cachefs: sync temp entry: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cachefs: close temp entry: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cachefs: rename temp entry: %w", err)
	}

	return nil
}

// lock acquires an advisory, whole-directory lock by creating lockFileName
// exclusively, retrying briefly if another process already holds it. The
// returned func releases the lock
func (s *Store) lock() (func(), error) {
	path := filepath.Join(s.dir, lockFileName)

	deadline := time.Now().Add(2 * time.Second)
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
		if err == nil {
			f.Close()
			return func() { os.Remove(path) }, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("cachefs: acquire lock: %w", err)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("cachefs: timed out waiting for lock at %s", path)
		}

		time.Sleep(20 * time.Millisecond)
	}
}
