package main

import (
	"context"
	"os"

	"github.com/savaki/deltashare-deployer/cmd/deltashare-deployer/commands"
	"github.com/savaki/deltashare-deployer/internal/di"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := di.ProvideLogger()
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "deltashare-deployer",
		Usage: "Delta Sharing downloader deployment toolkit",
		Description: `Provisions Azure infrastructure for the Delta Sharing data downloader
and publishes the application to it.

This tool provides commands for:
  - Deploying the downloader (resource group, storage account, function app)
  - Tearing a deployment down
  - Verifying a deployed app's endpoints
  - Running the downloader API locally for development`,
		Commands: []*cli.Command{
			commands.DeployCommand(&logger),
			commands.TeardownCommand(&logger),
			commands.VerifyCommand(&logger),
			commands.ServeCommand(&logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
