package di

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/savaki/deltashare-deployer/internal/azure"
	"github.com/savaki/deltashare-deployer/internal/cli"
	"github.com/savaki/deltashare-deployer/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer(t *testing.T) {
	t.Run("ResolvesCoreDependencies", func(t *testing.T) {
		container, err := New(WithFunctionKey("sekret"))
		require.NoError(t, err)

		assert.NotNil(t, MustGet[cli.Runner](container))
		assert.NotNil(t, MustGet[*azure.CLI](container))
		assert.NotNil(t, MustGet[*azure.FuncTools](container))
		assert.NotNil(t, MustGet[*server.Server](container))
		assert.Equal(t, FunctionKey("sekret"), MustGet[FunctionKey](container))
	})

	t.Run("ProvidesLogger", func(t *testing.T) {
		container, err := New()
		require.NoError(t, err)

		logger := MustGet[zerolog.Logger](container)
		assert.NotEqual(t, zerolog.Disabled, logger.GetLevel())
	})

	t.Run("WithProviders", func(t *testing.T) {
		type custom struct{ value string }

		container, err := New(WithProviders(func() *custom {
			return &custom{value: "extra"}
		}))
		require.NoError(t, err)
		assert.Equal(t, "extra", MustGet[*custom](container).value)
	})

	t.Run("MustGetPanicsOnUnknownType", func(t *testing.T) {
		container, err := New()
		require.NoError(t, err)

		type unregistered struct{}
		assert.Panics(t, func() {
			MustGet[*unregistered](container)
		})
	})
}
