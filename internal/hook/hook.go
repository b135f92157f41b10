// Package hook runs a frontend build and then fires post-build hooks, the
// way a bundler invokes its plugins' closeBundle callbacks once all output
// files are written.
package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ErrBuildFailed is returned when the build command exits unsuccessfully.
var ErrBuildFailed = errors.New("build failed")

// waitDelay bounds how long Build waits for the command's output pipes to
// close after the process group has been killed.
const waitDelay = 2 * time.Second

// Hook is called once per build after the output files are finalized.
type Hook interface {
	Name() string
	CloseBundle(ctx context.Context) error
}

// Builder produces the output the hooks operate on.
type Builder interface {
	Build(ctx context.Context) error
}

// CommandBuilder runs an external build command such as `npm run build`.
type CommandBuilder struct {
	Dir     string
	Command []string
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
}

// Build runs the command. An empty command does nothing.
func (b *CommandBuilder) Build(ctx context.Context) error {
	if len(b.Command) == 0 {
		return nil
	}
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, b.Command[0], b.Command[1:]...)
	cmd.Dir = b.Dir
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s: timed out after %s", ErrBuildFailed, strings.Join(b.Command, " "), b.Timeout)
		}
		return fmt.Errorf("%w: %s: %w", ErrBuildFailed, strings.Join(b.Command, " "), err)
	}
	return nil
}

// HookResult records one hook invocation.
type HookResult struct {
	Name     string
	Duration time.Duration
}

// Result summarizes a Run.
type Result struct {
	BuildDuration time.Duration
	Hooks         []HookResult
}

// Runner builds and then fires its hooks in registration order.
type Runner struct {
	Builder Builder // nil runs hooks only
	Logger  *slog.Logger

	hooks []Hook
}

// NewRunner returns a Runner for the given builder.
func NewRunner(b Builder, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{Builder: b, Logger: logger}
}

// Register appends hooks to the runner.
func (r *Runner) Register(hooks ...Hook) {
	r.hooks = append(r.hooks, hooks...)
}

// Hooks returns the registered hook names.
func (r *Runner) Hooks() []string {
	names := make([]string, len(r.hooks))
	for i, h := range r.hooks {
		names[i] = h.Name()
	}
	return names
}

// Run executes the build, then every hook exactly once. A failed build fires
// no hooks; the first failing hook stops the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	if r.Builder != nil {
		start := time.Now()
		r.Logger.Debug("build started")
		if err := r.Builder.Build(ctx); err != nil {
			return res, err
		}
		res.BuildDuration = time.Since(start)
		r.Logger.Debug("build finished", "duration", res.BuildDuration)
	}

	for _, h := range r.hooks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start := time.Now()
		r.Logger.Debug("running hook", "hook", h.Name())
		if err := h.CloseBundle(ctx); err != nil {
			return res, fmt.Errorf("hook %s: %w", h.Name(), err)
		}
		res.Hooks = append(res.Hooks, HookResult{Name: h.Name(), Duration: time.Since(start)})
	}
	return res, nil
}
