package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"
)

// CommandRunner executes the provider binary and returns its stdout.
// This abstraction allows us to mock process execution in tests.
//
//go:generate mockgen -destination=mocks/runner_mock.go -package=mocks github.com/kendaniels/now-playing/internal/probe CommandRunner
type CommandRunner interface {
	Run(ctx context.Context, path string, args ...string) ([]byte, error)
}

// ExecRunner is the real implementation using os/exec. Every invocation is
// bounded by a per-process timeout and an output size cap so a hung or
// misbehaving provider cannot stall the caller.
type ExecRunner struct {
	Timeout   time.Duration
	MaxOutput int
}

// Run invokes path with args and returns its stdout.
func (r *ExecRunner) Run(ctx context.Context, path string, args ...string) ([]byte, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, args...)
	out, err := cmd.Output()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("provider timed out after %s", r.Timeout)
	}
	if err != nil {
		return nil, err
	}
	if len(out) > r.MaxOutput {
		return nil, fmt.Errorf("provider output exceeds %d bytes", r.MaxOutput)
	}
	return out, nil
}

// isNotFound classifies an execution error as "binary not found", as
// opposed to permission, crash, or timeout failures.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
