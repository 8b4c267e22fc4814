package commands

import (
	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/di"
	"github.com/savaki/deltashare-deployer/internal/server"
	ucli "github.com/urfave/cli/v2"
)

// ServeCommand returns the serve command, which runs the downloader API
// locally. Useful for development and for testing a .share profile before
// deploying.
func ServeCommand(logger *zerolog.Logger) *ucli.Command {
	return &ucli.Command{
		Name:  "serve",
		Usage: "Run the delta sharing downloader API locally",
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: ":8080",
			},
			&ucli.StringFlag{
				Name:    "key",
				Usage:   "Function key required on data endpoints (empty disables auth)",
				EnvVars: []string{"DELTASHARE_FUNCTION_KEY"},
			},
		},
		Action: func(c *ucli.Context) error {
			container, err := di.New(di.WithFunctionKey(c.String("key")))
			if err != nil {
				return err
			}

			srv := di.MustGet[*server.Server](container)
			return srv.ListenAndServe(c.Context, c.String("addr"), *logger)
		},
	}
}
