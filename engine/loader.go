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

package engine

import (
	"github.com/purpleclay/tidemark/internal/tagparse"
)

const loadReleaseTagsOp = "load_release_tags"

// loadReleaseTags merges local and (optionally) remote tag listings
// into a candidate set, per §4.4
func loadReleaseTags(provider GitProvider, cfg resolvedConfig, localOnly bool) ([]ReleaseTag, RemoteLoadStatus, error) {
	locals, err := provider.ListLocalTags(cfg.tagPrefix)
	if err != nil {
		return nil, "", wrapError(err, RepositoryAccess, loadReleaseTagsOp, "failed to list local tags")
	}

	merged := map[string]TagRef{}
	order := make([]string, 0, len(locals))
	for _, tag := range locals {
		if _, exists := merged[tag.Name]; !exists {
			order = append(order, tag.Name)
		}
		merged[tag.Name] = tag
	}

	status := RemoteLoadStatus(LocalOnly)
	if !localOnly && cfg.remoteEnabled {
		remotes, err := provider.ListRemoteTags(cfg.remoteName, cfg.tagPrefix)
		if err != nil {
			if cfg.fallbackToLocal {
				status = FallbackLocal
			} else {
				return nil, "", wrapError(err, RemoteUnavailable, loadReleaseTagsOp, "failed to list remote tags")
			}
		} else {
			status = RemoteOK
			// Remote is authoritative on name collision: it overrides
			// any local entry of the same name
			for _, tag := range remotes {
				if _, exists := merged[tag.Name]; !exists {
					order = append(order, tag.Name)
				}
				merged[tag.Name] = tag
			}
		}
	}

	candidates := make([]ReleaseTag, 0, len(order))
	for _, name := range order {
		tag := merged[name]

		if cfg.requireAnnotated && !tag.Annotated {
			continue
		}

		anchorValue, ok := tagparse.Parse(tag.Name, cfg.tagPrefix)
		if !ok {
			continue
		}

		anchorCommit, err := provider.ResolveCommit(tag.CommitID)
		if err != nil {
			// A shallow clone may be missing the object a remote tag
			// points to; such tags are dropped, not errors (§9)
			continue
		}

		candidates = append(candidates, ReleaseTag{
			AnchorValue:  anchorValue,
			Tag:          tag,
			AnchorCommit: anchorCommit,
		})
	}

	return candidates, status, nil
}
