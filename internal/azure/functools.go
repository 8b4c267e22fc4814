package azure

import (
	"context"
	"fmt"

	"github.com/savaki/deltashare-deployer/internal/cli"
	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
)

// FuncTools wraps the Azure Functions Core Tools (func) used to package and
// publish the application source tree.
type FuncTools struct {
	runner cli.Runner
}

// NewFuncTools creates a func adapter backed by the given runner.
func NewFuncTools(runner cli.Runner) *FuncTools {
	return &FuncTools{runner: runner}
}

// CheckInstalled verifies func is resolvable on PATH.
func (f *FuncTools) CheckInstalled() error {
	if err := f.runner.LookPath("func"); err != nil {
		return fmt.Errorf("%w\nInstall it with: npm install -g azure-functions-core-tools@4", apperrors.ErrFuncToolsNotFound)
	}
	return nil
}

// Publish uploads and deploys the source tree at sourceDir to the named
// function app. Output streams to the operator's terminal since publishing
// can take minutes.
func (f *FuncTools) Publish(ctx context.Context, sourceDir, appName, runtime string) error {
	if err := f.runner.RunInteractive(ctx, sourceDir, "func", "azure", "functionapp", "publish", appName, "--"+runtime); err != nil {
		return fmt.Errorf("failed to publish to function app %s: %w", appName, err)
	}
	return nil
}
