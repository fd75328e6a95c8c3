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
	"errors"
	"fmt"
)

// Kind is a stable identifier for a category of resolution failure. The
// string form is part of the public contract: callers match on it, so
// values are never renamed once released
type Kind string

const (
	// ConfigParse indicates malformed or out-of-range configuration,
	// such as a timezone specification that doesn't match the grammar
	ConfigParse Kind = "ConfigParse"

	// RepositoryAccess indicates the git provider could not be reached,
	// either because the process isn't inside a repository or the
	// underlying git client is unavailable
	RepositoryAccess Kind = "RepositoryAccess"

	// UnknownRevision indicates a requested commit or path has no
	// corresponding commit within the repository
	UnknownRevision Kind = "UnknownRevision"

	// NoReleaseAnchor indicates the candidate set was empty after the
	// ancestry filter was applied
	NoReleaseAnchor Kind = "NoReleaseAnchor"

	// RemoteUnavailable indicates remote tag listing failed and
	// fallback to local-only resolution was disabled
	RemoteUnavailable Kind = "RemoteUnavailable"

	// TimestampAnomaly indicates the anchor's calendar date, in the
	// configured timezone, is strictly later than the target's
	TimestampAnomaly Kind = "TimestampAnomaly"

	// InternalInvariant indicates an invariant the engine relies on
	// was broken, which is indicative of a bug rather than bad input
	InternalInvariant Kind = "InternalInvariant"
)

// exitCodes maps each Kind to the stable numeric exit code fixed by §6.
// Exit code 2 (usage/CLI misuse) is owned by the CLI boundary and never
// appears here
var exitCodes = map[Kind]int{
	ConfigParse:       3,
	NoReleaseAnchor:   4,
	TimestampAnomaly:  5,
	RemoteUnavailable: 6,
	RepositoryAccess:  7,
	UnknownRevision:   8,
	InternalInvariant: 9,
}

// Error is the single error type surfaced by the resolution engine. It
// carries a stable Kind, the operation that failed, a human-readable
// message, and an optional wrapped cause. Kind is what callers should
// branch on; Op and Message are for diagnostics only and may change
// between versions
type Error struct {
	// Kind classifies the failure into one of the seven stable kinds
	Kind Kind

	// Op names the engine operation that produced the error, e.g.
	// "select_anchor" or "day_delta"
	Op string

	// Message is a human-readable description of the failure
	Message string

	// Err is the underlying cause, if any. It is never required to
	// reproduce the failure: determinism of failures (§7) only binds
	// Kind and Message, since the wrapped cause may carry volatile,
	// host-specific detail
	Err error
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause, allowing errors.Is and errors.As
// to see through to it
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind. Sentinel
// comparison is by Kind alone; Op and Message are diagnostic, not part
// of error identity
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ExitCode returns the stable numeric process exit code associated with
// the error's Kind, per the §6 exit code table
func (e *Error) ExitCode() int {
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return exitCodes[InternalInvariant]
}

// newError constructs an *Error for the given kind and operation
func newError(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// wrapError constructs an *Error for the given kind and operation,
// preserving an underlying cause
func wrapError(err error, kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and
// false otherwise
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// ExitCode returns the stable exit code for err: the code associated
// with its Kind if err is an *Error, or 1 for any other non-nil error,
// or 0 if err is nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 1
}
