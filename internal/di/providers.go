package di

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/azure"
	"github.com/savaki/deltashare-deployer/internal/cli"
	"github.com/savaki/deltashare-deployer/internal/server"
)

// ProvideLogger creates a zerolog.Logger configured for the runtime
// environment: JSON when DELTASHARE_LOG_FORMAT=json, console format with
// pretty printing otherwise.
func ProvideLogger() zerolog.Logger {
	if os.Getenv("DELTASHARE_LOG_FORMAT") == "json" {
		return zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}

// ProvideRunner returns the os/exec backed tool runner.
func ProvideRunner() cli.Runner {
	return cli.NewRunner()
}

// ProvideAzureCLI returns the az adapter.
func ProvideAzureCLI(runner cli.Runner) *azure.CLI {
	return azure.NewCLI(runner)
}

// ProvideFuncTools returns the func adapter.
func ProvideFuncTools(runner cli.Runner) *azure.FuncTools {
	return azure.NewFuncTools(runner)
}

// ProvideServer returns the sharing HTTP server.
func ProvideServer(key FunctionKey) *server.Server {
	return server.New(string(key), nil)
}
