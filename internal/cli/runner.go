// Package cli wraps invocation of external command-line tools. This is the
// only place the deployer shells out; everything above it works against the
// Runner interface so orchestration logic can be tested without az or func
// installed.
package cli

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Runner executes an external tool and returns its combined output.
type Runner interface {
	// LookPath reports whether the named binary is resolvable on PATH.
	LookPath(name string) error

	// Run executes name with args, blocking until the process exits.
	// Output is stdout+stderr combined, trimmed of trailing whitespace.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// RunInteractive executes name with args from dir (empty means the
	// current directory), attached to the caller's stdout/stderr, for
	// long-running tools that stream progress.
	RunInteractive(ctx context.Context, dir, name string, args ...string) error
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	zerolog.Ctx(ctx).Debug().
		Str("tool", name).
		Strs("args", args).
		Msg("Invoking external tool")

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func (execRunner) RunInteractive(ctx context.Context, dir, name string, args ...string) error {
	zerolog.Ctx(ctx).Debug().
		Str("tool", name).
		Str("dir", dir).
		Strs("args", args).
		Msg("Invoking external tool (interactive)")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
