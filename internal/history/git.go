package history

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// TimestampSource selects which commit date git reports.
type TimestampSource string

const (
	// AuthorDate is when the change was originally written.
	AuthorDate TimestampSource = "author"
	// CommitterDate is when the change was last applied.
	CommitterDate TimestampSource = "committer"
)

// Valid reports whether s is a known source.
func (s TimestampSource) Valid() bool {
	return s == AuthorDate || s == CommitterDate
}

func (s TimestampSource) format() string {
	if s == CommitterDate {
		return "--format=%cI"
	}
	return "--format=%aI"
}

// DefaultGitTimeout bounds a single git log invocation.
const DefaultGitTimeout = 10 * time.Second

// GitLookup asks git for the most recent commit touching a file.
type GitLookup struct {
	binary   string
	source   TimestampSource
	executor *CommandExecutor

	resolveOnce sync.Once
	resolved    string
	resolveErr  error
}

// GitOption configures a GitLookup.
type GitOption func(*GitLookup)

// WithBinary overrides the git executable.
func WithBinary(name string) GitOption {
	return func(g *GitLookup) { g.binary = name }
}

// WithTimestampSource selects author or committer dates.
func WithTimestampSource(source TimestampSource) GitOption {
	return func(g *GitLookup) {
		if source.Valid() {
			g.source = source
		}
	}
}

// WithTimeout bounds each git invocation.
func WithTimeout(timeout time.Duration) GitOption {
	return func(g *GitLookup) {
		if timeout > 0 {
			g.executor = NewCommandExecutor(timeout)
		}
	}
}

// NewGitLookup creates a lookup backed by the git command line.
func NewGitLookup(opts ...GitOption) *GitLookup {
	g := &GitLookup{
		binary:   "git",
		source:   AuthorDate,
		executor: NewCommandExecutor(DefaultGitTimeout),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Lookup = (*GitLookup)(nil)

// LastChange runs git log in the file's directory. It is attempted once.
func (g *GitLookup) LastChange(ctx context.Context, path string) Result {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Unavailable(fmt.Sprintf("resolve path: %v", err))
	}

	bin, err := g.resolveBinary()
	if err != nil {
		return Unavailable(err.Error())
	}

	dir, name := filepath.Split(abs)
	res, err := g.executor.ExecuteInDir(ctx, filepath.Clean(dir), bin, "log", "-1", g.source.format(), "--", name)
	if err != nil {
		return Unavailable(err.Error())
	}
	if res.ExitCode != 0 {
		return Unavailable(fmt.Sprintf("git exited with code %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr)))
	}

	return parseTimestamp(res.Stdout)
}

// resolveBinary finds the git executable on the first lookup and reuses it.
func (g *GitLookup) resolveBinary() (string, error) {
	g.resolveOnce.Do(func() {
		path, err := exec.LookPath(g.binary)
		if err != nil {
			g.resolveErr = fmt.Errorf("%s not found: %w", g.binary, err)
			return
		}
		g.resolved = path
	})
	return g.resolved, g.resolveErr
}

// parseTimestamp reads a strict ISO 8601 timestamp from git output.
func parseTimestamp(out string) Result {
	s := strings.TrimSpace(out)
	if s == "" {
		return Unavailable("no history for file")
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Unavailable(fmt.Sprintf("malformed timestamp %q", s))
	}
	return Found(t)
}
