// Package deploy runs the ordered provisioning sequence: resource group,
// storage account, function app, readiness wait, publish. Steps are strictly
// sequential; the first failure aborts the run.
package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/azure"
	"github.com/savaki/deltashare-deployer/internal/config"
	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
	"github.com/savaki/deltashare-deployer/internal/naming"
)

// Orchestrator drives one deployment run end to end.
type Orchestrator struct {
	az    *azure.CLI
	tools *azure.FuncTools
	namer *naming.Generator
	cfg   config.Deployment

	rollbackOnFailure bool
	skipPublish       bool
	dryRun            bool

	// compensations holds one undo action per created resource, in
	// creation order.
	compensations []compensation
}

type compensation struct {
	description string
	undo        func(ctx context.Context) error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRollbackOnFailure replays the compensation log in reverse when a later
// step fails. Off by default: the historical behavior is to leave partially
// created resources in place.
func WithRollbackOnFailure(enabled bool) Option {
	return func(o *Orchestrator) { o.rollbackOnFailure = enabled }
}

// WithSkipPublish provisions infrastructure without publishing code.
func WithSkipPublish(enabled bool) Option {
	return func(o *Orchestrator) { o.skipPublish = enabled }
}

// WithDryRun prints the planned sequence without invoking any tool that
// mutates cloud state.
func WithDryRun(enabled bool) Option {
	return func(o *Orchestrator) { o.dryRun = enabled }
}

// New creates an Orchestrator.
func New(az *azure.CLI, tools *azure.FuncTools, namer *naming.Generator, cfg config.Deployment, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		az:    az,
		tools: tools,
		namer: namer,
		cfg:   cfg,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Result summarizes a successful deployment.
type Result struct {
	ResourceGroup  string
	StorageAccount string
	FunctionApp    string
	BaseURL        string
	Subscription   string
	Published      bool
}

// Run executes the full deployment sequence and returns the summary. On
// failure it returns the first error, after optionally rolling back the
// resources created so far.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	// Preconditions fail fast, before any resource exists.
	if err := o.az.CheckInstalled(); err != nil {
		return nil, err
	}
	account, err := o.az.CurrentAccount(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("subscription", account.Name).
		Str("user", account.User.Name).
		Msg("Azure session verified")

	names, err := o.namer.Generate()
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("resource_group", o.cfg.ResourceGroup).
		Str("storage_account", names.StorageAccount).
		Str("function_app", names.FunctionApp).
		Msg("Generated resource names")

	if o.dryRun {
		o.printPlan(names)
		return &Result{
			ResourceGroup:  o.cfg.ResourceGroup,
			StorageAccount: names.StorageAccount,
			FunctionApp:    names.FunctionApp,
			BaseURL:        naming.BaseURL(names.FunctionApp),
			Subscription:   account.Name,
		}, nil
	}

	result, err := o.provision(ctx, names)
	if err != nil {
		o.handleFailure(ctx, err)
		return nil, err
	}
	result.Subscription = account.Name
	return result, nil
}

func (o *Orchestrator) provision(ctx context.Context, names naming.Names) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	logger.Info().Str("name", o.cfg.ResourceGroup).Str("location", o.cfg.Location).Msg("Creating resource group")
	if err := o.az.CreateResourceGroup(ctx, o.cfg.ResourceGroup, o.cfg.Location); err != nil {
		return nil, err
	}
	o.pushCompensation(fmt.Sprintf("delete resource group %s", o.cfg.ResourceGroup), func(ctx context.Context) error {
		return o.az.DeleteResourceGroup(ctx, o.cfg.ResourceGroup)
	})

	logger.Info().Str("name", names.StorageAccount).Str("sku", o.cfg.StorageSKU).Msg("Creating storage account")
	if err := o.az.CreateStorageAccount(ctx, names.StorageAccount, o.cfg.ResourceGroup, o.cfg.Location, o.cfg.StorageSKU); err != nil {
		return nil, err
	}

	logger.Info().Str("name", names.FunctionApp).Msg("Creating function app")
	err := o.az.CreateFunctionApp(ctx, azure.FunctionAppSpec{
		Name:             names.FunctionApp,
		ResourceGroup:    o.cfg.ResourceGroup,
		Location:         o.cfg.Location,
		StorageAccount:   names.StorageAccount,
		Runtime:          o.cfg.Runtime,
		RuntimeVersion:   o.cfg.RuntimeVersion,
		FunctionsVersion: o.cfg.FunctionsVersion,
		OSType:           o.cfg.OSType,
	})
	if err != nil {
		return nil, err
	}

	if err := o.waitUntilReady(ctx, names.FunctionApp); err != nil {
		return nil, err
	}

	result := &Result{
		ResourceGroup:  o.cfg.ResourceGroup,
		StorageAccount: names.StorageAccount,
		FunctionApp:    names.FunctionApp,
		BaseURL:        naming.BaseURL(names.FunctionApp),
	}

	if o.skipPublish {
		logger.Info().Msg("Skipping publish step")
		return result, nil
	}

	// The publish tool is only checked now, after provisioning, matching
	// the documented contract: resources created so far stay in place when
	// func is missing unless rollback was requested.
	if err := o.tools.CheckInstalled(); err != nil {
		return nil, err
	}
	logger.Info().Str("app", names.FunctionApp).Str("source", o.cfg.SourceDir).Msg("Publishing application")
	if err := o.tools.Publish(ctx, o.cfg.SourceDir, names.FunctionApp, o.cfg.Runtime); err != nil {
		return nil, err
	}
	result.Published = true
	return result, nil
}

// waitUntilReady polls the function app state until it reports Running or the
// configured deadline passes.
func (o *Orchestrator) waitUntilReady(ctx context.Context, appName string) error {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("app", appName).Dur("timeout", o.cfg.WaitTimeout).Msg("Waiting for function app to become ready")

	deadline := time.Now().Add(o.cfg.WaitTimeout)
	attempt := 0
	for time.Now().Before(deadline) {
		attempt++
		state, err := o.az.FunctionAppState(ctx, appName, o.cfg.ResourceGroup)
		if err == nil && strings.EqualFold(state, "Running") {
			logger.Info().Int("attempts", attempt).Msg("Function app is ready")
			return nil
		}
		if err != nil {
			logger.Debug().Err(err).Int("attempt", attempt).Msg("State query failed, retrying")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(o.cfg.PollInterval):
		}
	}

	return fmt.Errorf("%w: %s after %v", apperrors.ErrAppNotReady, appName, o.cfg.WaitTimeout)
}

func (o *Orchestrator) pushCompensation(description string, undo func(ctx context.Context) error) {
	o.compensations = append(o.compensations, compensation{description: description, undo: undo})
}

// handleFailure either replays the compensation log in reverse or lists the
// orphaned resources so the operator can clean up by hand.
func (o *Orchestrator) handleFailure(ctx context.Context, cause error) {
	logger := zerolog.Ctx(ctx)
	if len(o.compensations) == 0 {
		return
	}

	if !o.rollbackOnFailure {
		for _, c := range o.compensations {
			logger.Warn().Str("action", c.description).Msg("Resource left in place, clean up manually")
		}
		return
	}

	logger.Warn().Err(cause).Msg("Rolling back partially created resources")
	for i := len(o.compensations) - 1; i >= 0; i-- {
		c := o.compensations[i]
		logger.Info().Str("action", c.description).Msg("Rolling back")
		if err := c.undo(ctx); err != nil {
			logger.Error().Err(err).Str("action", c.description).Msg("Rollback action failed")
		}
	}
}

func (o *Orchestrator) printPlan(names naming.Names) {
	fmt.Println("DRY RUN: would execute the following sequence:")
	fmt.Printf("  az group create --name %s --location %s\n", o.cfg.ResourceGroup, o.cfg.Location)
	fmt.Printf("  az storage account create --name %s --resource-group %s --location %s --sku %s\n",
		names.StorageAccount, o.cfg.ResourceGroup, o.cfg.Location, o.cfg.StorageSKU)
	fmt.Printf("  az functionapp create --name %s --resource-group %s --consumption-plan-location %s --storage-account %s --runtime %s --runtime-version %s --functions-version %s --os-type %s\n",
		names.FunctionApp, o.cfg.ResourceGroup, o.cfg.Location, names.StorageAccount,
		o.cfg.Runtime, o.cfg.RuntimeVersion, o.cfg.FunctionsVersion, o.cfg.OSType)
	if !o.skipPublish {
		fmt.Printf("  func azure functionapp publish %s --%s\n", names.FunctionApp, o.cfg.Runtime)
	}
}
