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

// Package tmcache computes the digest key an Engine and a CacheStore
// share for a given configuration, so a caller can recompute (or
// invalidate) the same key the engine would derive internally
package tmcache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/purpleclay/tidemark/pkg/tmconfig"
)

// Key derives a stable digest over the subset of cfg that changes the
// shape of a resolved candidate set, plus engineVersion so a binary
// upgrade that changes resolution semantics can't be served a cache
// entry written by an older build
func Key(cfg tmconfig.Config, engineVersion string) string {
	var b strings.Builder
	b.WriteString(engineVersion)
	b.WriteByte('\x1f')
	b.WriteString(cfg.Release.TagPrefix)
	b.WriteByte('\x1f')
	b.WriteString(strconv.FormatBool(cfg.Release.RequireAnnotatedTags))
	b.WriteByte('\x1f')
	b.WriteString(cfg.Time.Timezone)
	b.WriteByte('\x1f')
	b.WriteString(string(cfg.Remote.Strategy))
	b.WriteByte('\x1f')
	b.WriteString(cfg.Remote.Name)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
