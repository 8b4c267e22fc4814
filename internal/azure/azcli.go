// Package azure adapts the two external tools a deployment depends on: the
// Azure CLI (az) for control-plane operations and the Functions Core Tools
// (func) for publishing application code. Neither tool's behavior is
// reimplemented; this package only builds arguments and parses output.
package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/savaki/deltashare-deployer/internal/cli"
	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
)

// CLI wraps the az command.
type CLI struct {
	runner cli.Runner
}

// NewCLI creates an az adapter backed by the given runner.
func NewCLI(runner cli.Runner) *CLI {
	return &CLI{runner: runner}
}

// Account identifies the signed-in Azure subscription.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

// CheckInstalled verifies az is resolvable on PATH. The returned error
// carries per-platform install remediation.
func (c *CLI) CheckInstalled() error {
	if err := c.runner.LookPath("az"); err != nil {
		return fmt.Errorf("%w\n%s", apperrors.ErrAzureCLINotFound, installHint())
	}
	return nil
}

// CurrentAccount returns the active az session, or ErrNotLoggedIn when no
// authenticated session exists.
func (c *CLI) CurrentAccount(ctx context.Context) (*Account, error) {
	out, err := c.runner.Run(ctx, "az", "account", "show", "--output", "json")
	if err != nil {
		return nil, fmt.Errorf("%w: run 'az login' first: %s", apperrors.ErrNotLoggedIn, firstLine(out))
	}

	var account Account
	if err := json.Unmarshal([]byte(out), &account); err != nil {
		return nil, fmt.Errorf("failed to parse az account output: %w", err)
	}
	return &account, nil
}

// CreateResourceGroup creates the logical container for the deployment's
// resources in the given region.
func (c *CLI) CreateResourceGroup(ctx context.Context, name, location string) error {
	out, err := c.runner.Run(ctx, "az", "group", "create",
		"--name", name,
		"--location", location,
		"--output", "none")
	if err != nil {
		return fmt.Errorf("failed to create resource group %s: %w: %s", name, err, out)
	}
	return nil
}

// DeleteResourceGroup removes a resource group and everything inside it.
func (c *CLI) DeleteResourceGroup(ctx context.Context, name string) error {
	out, err := c.runner.Run(ctx, "az", "group", "delete",
		"--name", name,
		"--yes",
		"--output", "none")
	if err != nil {
		return fmt.Errorf("failed to delete resource group %s: %w: %s", name, err, out)
	}
	return nil
}

// CreateStorageAccount creates a durable storage account inside the resource
// group using the given redundancy sku.
func (c *CLI) CreateStorageAccount(ctx context.Context, name, resourceGroup, location, sku string) error {
	out, err := c.runner.Run(ctx, "az", "storage", "account", "create",
		"--name", name,
		"--resource-group", resourceGroup,
		"--location", location,
		"--sku", sku,
		"--output", "none")
	if err != nil {
		return fmt.Errorf("failed to create storage account %s: %w: %s", name, err, out)
	}
	return nil
}

// FunctionAppSpec describes the serverless application to create.
type FunctionAppSpec struct {
	Name             string
	ResourceGroup    string
	Location         string
	StorageAccount   string
	Runtime          string
	RuntimeVersion   string
	FunctionsVersion string
	OSType           string
}

// CreateFunctionApp creates a consumption-plan function app bound to the
// storage account.
func (c *CLI) CreateFunctionApp(ctx context.Context, spec FunctionAppSpec) error {
	out, err := c.runner.Run(ctx, "az", "functionapp", "create",
		"--name", spec.Name,
		"--resource-group", spec.ResourceGroup,
		"--consumption-plan-location", spec.Location,
		"--storage-account", spec.StorageAccount,
		"--runtime", spec.Runtime,
		"--runtime-version", spec.RuntimeVersion,
		"--functions-version", spec.FunctionsVersion,
		"--os-type", spec.OSType,
		"--output", "none")
	if err != nil {
		return fmt.Errorf("failed to create function app %s: %w: %s", spec.Name, err, out)
	}
	return nil
}

// FunctionAppState returns the app's reported state, e.g. "Running".
func (c *CLI) FunctionAppState(ctx context.Context, name, resourceGroup string) (string, error) {
	out, err := c.runner.Run(ctx, "az", "functionapp", "show",
		"--name", name,
		"--resource-group", resourceGroup,
		"--query", "state",
		"--output", "tsv")
	if err != nil {
		return "", fmt.Errorf("failed to query function app %s state: %w: %s", name, err, out)
	}
	return strings.TrimSpace(out), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func installHint() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install it with: brew install azure-cli"
	case "linux":
		return "Install it with: curl -sL https://aka.ms/InstallAzureCLIDeb | sudo bash"
	case "windows":
		return "Install it with: winget install Microsoft.AzureCLI"
	default:
		return "See https://learn.microsoft.com/cli/azure/install-azure-cli"
	}
}
