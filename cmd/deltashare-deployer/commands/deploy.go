package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/azure"
	"github.com/savaki/deltashare-deployer/internal/cli"
	"github.com/savaki/deltashare-deployer/internal/config"
	"github.com/savaki/deltashare-deployer/internal/deploy"
	"github.com/savaki/deltashare-deployer/internal/di"
	"github.com/savaki/deltashare-deployer/internal/naming"
	ucli "github.com/urfave/cli/v2"
)

// DeployCommand returns the deploy command. With no flags it deploys with the
// compiled-in defaults; every parameter can be overridden by flag, config
// file, or environment.
func DeployCommand(logger *zerolog.Logger) *ucli.Command {
	return &ucli.Command{
		Name:  "deploy",
		Usage: "Provision Azure infrastructure and publish the downloader",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:  "config",
				Usage: "Path to a YAML deployment config file",
			},
			&ucli.StringFlag{
				Name:  "resource-group",
				Usage: "Resource group name",
			},
			&ucli.StringFlag{
				Name:  "location",
				Usage: "Azure region",
			},
			&ucli.StringFlag{
				Name:  "prefix",
				Usage: "Resource name prefix",
			},
			&ucli.StringFlag{
				Name:  "source",
				Usage: "Application source directory to publish",
			},
			&ucli.BoolFlag{
				Name:  "suffix",
				Usage: "Append a collision-resistant suffix to generated names",
				Value: true,
			},
			&ucli.DurationFlag{
				Name:  "wait-timeout",
				Usage: "How long to wait for the function app to become ready",
			},
			&ucli.BoolFlag{
				Name:  "rollback-on-failure",
				Usage: "Delete created resources when a later step fails",
			},
			&ucli.BoolFlag{
				Name:  "skip-publish",
				Usage: "Provision infrastructure without publishing code",
			},
			&ucli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be created without creating it",
			},
		},
		Action: func(c *ucli.Context) error {
			ctx := c.Context

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if v := c.String("resource-group"); v != "" {
				cfg.ResourceGroup = v
			}
			if v := c.String("location"); v != "" {
				cfg.Location = v
			}
			if v := c.String("prefix"); v != "" {
				cfg.Prefix = v
			}
			if v := c.String("source"); v != "" {
				cfg.SourceDir = v
			}
			if v := c.Duration("wait-timeout"); v > 0 {
				cfg.WaitTimeout = v
			}

			container, err := di.New()
			if err != nil {
				return err
			}

			var (
				runner = di.MustGet[cli.Runner](container)
				az     = azure.NewCLI(runner)
				tools  = azure.NewFuncTools(runner)
				namer  = naming.NewGenerator(cfg.Prefix, naming.WithSuffix(c.Bool("suffix")))
			)

			orchestrator := deploy.New(az, tools, namer, cfg,
				deploy.WithRollbackOnFailure(c.Bool("rollback-on-failure")),
				deploy.WithSkipPublish(c.Bool("skip-publish")),
				deploy.WithDryRun(c.Bool("dry-run")),
			)

			started := time.Now()
			result, err := orchestrator.Run(ctx)
			if err != nil {
				return err
			}

			if !c.Bool("dry-run") {
				logger.Info().Dur("elapsed", time.Since(started)).Msg("Deployment finished")
				deploy.WriteSummary(os.Stdout, result)
			}
			return nil
		},
	}
}
