package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/azure"
	"github.com/savaki/deltashare-deployer/internal/cli"
	"github.com/savaki/deltashare-deployer/internal/config"
	ucli "github.com/urfave/cli/v2"
)

// TeardownCommand returns the teardown command, which deletes the resource
// group created by a deploy along with everything inside it.
func TeardownCommand(logger *zerolog.Logger) *ucli.Command {
	return &ucli.Command{
		Name:  "teardown",
		Usage: "Delete the deployment's resource group and all its resources",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:  "resource-group",
				Usage: "Resource group to delete",
				Value: config.DefaultResourceGroup,
			},
			&ucli.BoolFlag{
				Name:  "yes",
				Usage: "Skip the confirmation prompt",
			},
		},
		Action: func(c *ucli.Context) error {
			ctx := c.Context
			group := c.String("resource-group")

			if !c.Bool("yes") {
				fmt.Printf("Delete resource group %s and ALL resources inside it? [y/N]: ", group)
				var answer string
				_, _ = fmt.Scanln(&answer)
				if answer != "y" && answer != "Y" && answer != "yes" {
					fmt.Println("Aborted")
					return nil
				}
			}

			az := azure.NewCLI(cli.NewRunner())
			if err := az.CheckInstalled(); err != nil {
				return err
			}
			if _, err := az.CurrentAccount(ctx); err != nil {
				return err
			}

			logger.Info().Str("resource_group", group).Msg("Deleting resource group")
			if err := az.DeleteResourceGroup(ctx, group); err != nil {
				return err
			}

			fmt.Printf("\n✓ Teardown complete for resource group %s\n", group)
			return nil
		},
	}
}
