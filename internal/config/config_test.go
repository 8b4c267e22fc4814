package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "deltashare-rg", cfg.ResourceGroup)
	assert.Equal(t, "eastus", cfg.Location)
	assert.Equal(t, "deltashare", cfg.Prefix)
	assert.Equal(t, "python", cfg.Runtime)
	assert.Equal(t, "3.11", cfg.RuntimeVersion)
	assert.Equal(t, "4", cfg.FunctionsVersion)
	assert.Equal(t, "linux", cfg.OSType)
	assert.Equal(t, "Standard_LRS", cfg.StorageSKU)
	assert.Equal(t, 3*time.Minute, cfg.WaitTimeout)
}

func TestLoad(t *testing.T) {
	t.Run("EmptyPathReturnsDefaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deploy.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
resourceGroup: custom-rg
location: westeurope
waitTimeout: 5m
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "custom-rg", cfg.ResourceGroup)
		assert.Equal(t, "westeurope", cfg.Location)
		assert.Equal(t, 5*time.Minute, cfg.WaitTimeout)
		// Untouched fields keep defaults.
		assert.Equal(t, "deltashare", cfg.Prefix)
		assert.Equal(t, "Standard_LRS", cfg.StorageSKU)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deploy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("location: westeurope\n"), 0o600))

		t.Setenv("DELTASHARE_LOCATION", "northeurope")
		t.Setenv("DELTASHARE_WAIT_TIMEOUT", "90s")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "northeurope", cfg.Location)
		assert.Equal(t, 90*time.Second, cfg.WaitTimeout)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load("/does/not/exist.yaml")
		assert.Error(t, err)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deploy.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
