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

// Package gitcli implements engine.GitProvider by shelling out to an
// installed git client, the way gitz's Client hands every operation off
// to the OS git binary rather than re-implementing the wire protocol
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/purpleclay/tidemark/engine"
	"github.com/purpleclay/tidemark/internal/gitcli/scan"
)

// ErrGitMissing is raised when no git client was found on the PATH
type ErrGitMissing struct {
	PathEnv string
}

func (e ErrGitMissing) Error() string {
	return fmt.Sprintf("git is not installed under the PATH environment variable. PATH resolves to %s", e.PathEnv)
}

// ErrGitExecCommand is raised when a git command fails to execute
type ErrGitExecCommand struct {
	Cmd string
	Out string
}

func (e ErrGitExecCommand) Error() string {
	return fmt.Sprintf("failed to execute git command: %s\n\n%s", e.Cmd, e.Out)
}

// Option customizes a Provider at construction time
type Option func(*Provider)

// WithLogger overrides the default discard logger. gitcli is the one
// corner of the module permitted to log: the engine it backs stays
// silent and only returns errors to its caller
func WithLogger(logger *log.Logger) Option {
	return func(p *Provider) {
		p.log = logger
	}
}

// WithDir runs every git invocation inside dir instead of the process's
// current working directory
func WithDir(dir string) Option {
	return func(p *Provider) {
		p.dir = dir
	}
}

// Provider implements engine.GitProvider against an installed git client
type Provider struct {
	dir string
	log *log.Logger
}

// NewProvider returns a Provider after confirming a git client is
// reachable on the PATH
func NewProvider(opts ...Option) (*Provider, error) {
	p := &Provider{log: log.New(io.Discard)}
	p.log.SetLevel(log.WarnLevel)

	for _, opt := range opts {
		opt(p)
	}

	if _, err := p.exec(context.Background(), "type git"); err != nil {
		return nil, ErrGitMissing{PathEnv: os.Getenv("PATH")}
	}

	return p, nil
}

func (p *Provider) exec(ctx context.Context, cmd string) (string, error) {
	parsed, err := syntax.NewParser().Parse(strings.NewReader(cmd), "")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	runnerOpts := []interp.RunnerOption{interp.StdIO(os.Stdin, &buf, &buf)}
	if p.dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(p.dir))
	}

	r, err := interp.New(runnerOpts...)
	if err != nil {
		return "", err
	}

	p.log.Debug("executing git command", "cmd", cmd)

	if err := r.Run(ctx, parsed); err != nil {
		out := strings.TrimSuffix(buf.String(), "\n")
		p.log.Debug("git command failed", "cmd", cmd, "out", out)
		return "", ErrGitExecCommand{Cmd: cmd, Out: out}
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

const (
	resolveOp    = "resolve_commit"
	distanceOp   = "commit_distance"
	ancestryOp   = "ancestry_path"
	lastModifyOp = "last_modifying_commit"
)

// commitFormat yields RecordSep-delimited "<id><US><unix-seconds>" records
const commitFormat = `--format=%H` + "\x1f" + `%ct` + "\x1e"

// HeadCommit returns the commit currently checked out
func (p *Provider) HeadCommit() (engine.CommitInfo, error) {
	return p.ResolveCommit("HEAD")
}

// ResolveCommit resolves any revision git understands into a CommitInfo
func (p *Provider) ResolveCommit(rev string) (engine.CommitInfo, error) {
	out, err := p.exec(context.Background(), fmt.Sprintf("git log -1 %s %s", commitFormat, shellQuote(rev)))
	if err != nil {
		return engine.CommitInfo{}, err
	}

	records := splitRecords(out)
	if len(records) != 1 {
		return engine.CommitInfo{}, fmt.Errorf("%s: unexpected output resolving %q", resolveOp, rev)
	}

	return parseCommitRecord(records[0])
}

// CommitExists reports whether rev names an object reachable as a commit
func (p *Provider) CommitExists(rev string) bool {
	_, err := p.exec(context.Background(), fmt.Sprintf("git cat-file -e %s^{commit}", shellQuote(rev)))
	return err == nil
}

// ListLocalTags lists every local tag whose name starts with prefix
func (p *Provider) ListLocalTags(prefix string) ([]engine.TagRef, error) {
	out, err := p.exec(context.Background(), fmt.Sprintf(
		`git for-each-ref --format='%%(refname:lstrip=2)%s%%(objectname)%s%%(*objectname)%s%%(objecttype)%s' 'refs/tags/%s*'`,
		string(rune(0x1f)), string(rune(0x1f)), string(rune(0x1f)), string(rune(0x1e)), prefix))
	if err != nil {
		return nil, err
	}

	var tags []engine.TagRef
	for _, record := range splitRecords(out) {
		tag, ok := parseLocalTagRecord(record)
		if ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func parseLocalTagRecord(record string) (engine.TagRef, bool) {
	fields := strings.Split(record, "\x1f")
	if len(fields) != 4 {
		return engine.TagRef{}, false
	}

	name, objectName, peeled, objectType := fields[0], fields[1], fields[2], fields[3]
	if name == "" {
		return engine.TagRef{}, false
	}

	annotated := objectType == "tag"
	commitID := objectName
	if annotated && peeled != "" {
		commitID = peeled
	}

	return engine.TagRef{
		Name:      name,
		CommitID:  commitID,
		Annotated: annotated,
		Source:    engine.Local,
	}, true
}

// ListRemoteTags lists tags advertised by remote whose name starts with
// prefix, without fetching any objects: ls-remote only reads refs
func (p *Provider) ListRemoteTags(remote, prefix string) ([]engine.TagRef, error) {
	out, err := p.exec(context.Background(), fmt.Sprintf(
		"git ls-remote --tags %s 'refs/tags/%s*'", shellQuote(remote), prefix))
	if err != nil {
		return nil, err
	}

	peeled := map[string]string{}
	direct := map[string]string{}
	var order []string

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sha, ref, found := strings.Cut(line, "\t")
		if !found {
			continue
		}

		name := strings.TrimPrefix(ref, "refs/tags/")
		if strings.HasSuffix(name, "^{}") {
			peeled[strings.TrimSuffix(name, "^{}")] = sha
			continue
		}

		if _, seen := direct[name]; !seen {
			order = append(order, name)
		}
		direct[name] = sha
	}

	tags := make([]engine.TagRef, 0, len(order))
	for _, name := range order {
		commitID := direct[name]
		annotated := false
		if dereferenced, ok := peeled[name]; ok {
			commitID = dereferenced
			annotated = true
		}

		tags = append(tags, engine.TagRef{
			Name:      name,
			CommitID:  commitID,
			Annotated: annotated,
			Source:    engine.Remote,
		})
	}

	return tags, nil
}

// IsAncestor reports whether a is an ancestor of (or equal to) d
func (p *Provider) IsAncestor(a, d string) (bool, error) {
	_, err := p.exec(context.Background(), fmt.Sprintf(
		"git merge-base --is-ancestor %s %s", shellQuote(a), shellQuote(d)))
	if err == nil {
		return true, nil
	}

	var execErr ErrGitExecCommand
	if !asExecErr(err, &execErr) {
		return false, err
	}

	// merge-base exits 1 when a is not an ancestor of d, and with a
	// higher code (or a parse failure) for an actual error. Since the
	// shell interpreter does not surface the numeric exit code, treat
	// any command failure with no output as "not an ancestor"
	if execErr.Out == "" {
		return false, nil
	}

	return false, err
}

// CommitDistance counts the commits on (a, d]
func (p *Provider) CommitDistance(a, d string) (uint32, error) {
	out, err := p.exec(context.Background(), fmt.Sprintf(
		"git rev-list --count %s..%s", shellQuote(a), shellQuote(d)))
	if err != nil {
		return 0, err
	}

	var n uint32
	if _, scanErr := fmt.Sscanf(strings.TrimSpace(out), "%d", &n); scanErr != nil {
		return 0, fmt.Errorf("%s: %w", distanceOp, scanErr)
	}
	return n, nil
}

// AncestryPathCommits returns every commit on (a, d], oldest first. Git
// itself emits ancestry-path commits newest first, so --reverse is
// required to match gitfake and satisfy the shared provider contract
func (p *Provider) AncestryPathCommits(a, d string) ([]engine.CommitInfo, error) {
	out, err := p.exec(context.Background(), fmt.Sprintf(
		"git log --ancestry-path --reverse %s %s..%s", commitFormat, shellQuote(a), shellQuote(d)))
	if err != nil {
		return nil, err
	}

	var commits []engine.CommitInfo
	for _, record := range splitRecords(out) {
		commit, parseErr := parseCommitRecord(record)
		if parseErr != nil {
			return nil, fmt.Errorf("%s: %w", ancestryOp, parseErr)
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// LastModifyingCommit returns the most recent commit reachable from
// HEAD that touched path
func (p *Provider) LastModifyingCommit(path string, followRenames bool) (engine.CommitInfo, error) {
	follow := ""
	if followRenames {
		follow = "--follow"
	}

	out, err := p.exec(context.Background(), fmt.Sprintf(
		"git log -1 %s %s -- %s", commitFormat, follow, shellQuote(path)))
	if err != nil {
		return engine.CommitInfo{}, err
	}

	records := splitRecords(out)
	if len(records) != 1 {
		return engine.CommitInfo{}, fmt.Errorf("%s: %q has no history", lastModifyOp, path)
	}

	return parseCommitRecord(records[0])
}

func splitRecords(out string) []string {
	var records []string

	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Split(scan.Records)
	for scanner.Scan() {
		rec := scanner.Text()
		if rec == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func parseCommitRecord(record string) (engine.CommitInfo, error) {
	id, ts, found := strings.Cut(record, "\x1f")
	if !found {
		return engine.CommitInfo{}, fmt.Errorf("malformed commit record %q", record)
	}

	var seconds int64
	if _, err := fmt.Sscanf(strings.TrimSpace(ts), "%d", &seconds); err != nil {
		return engine.CommitInfo{}, fmt.Errorf("malformed commit timestamp %q: %w", ts, err)
	}

	return engine.CommitInfo{ID: id, Timestamp: seconds}, nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func asExecErr(err error, target *ErrGitExecCommand) bool {
	execErr, ok := err.(ErrGitExecCommand)
	if ok {
		*target = execErr
	}
	return ok
}
