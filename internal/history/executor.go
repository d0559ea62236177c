package history

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/d-kuro/git-sitemap/internal/errors"
)

// CommandExecutor runs a command inside a directory, bounding each call
// with a timeout.
type CommandExecutor struct {
	timeout time.Duration
}

// NewCommandExecutor creates a new command executor with the specified timeout.
func NewCommandExecutor(timeout time.Duration) *CommandExecutor {
	return &CommandExecutor{timeout: timeout}
}

// CommandResult holds the output and exit status of a finished command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExecuteInDir runs name with args in dir. A non-zero exit is reported in
// the result; failing to start or timing out is an error.
func (e *CommandExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (*CommandResult, error) {
	if !filepath.IsAbs(dir) {
		return nil, fmt.Errorf("directory must be an absolute path: %s", dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var exitErr *exec.ExitError
	switch err := cmd.Run(); {
	case err == nil:
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("%s timed out after %v", name, e.timeout)
	case errors.As(err, &exitErr):
	default:
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return &CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}
