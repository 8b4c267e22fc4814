// Package config holds the deployment parameters. Every value has a
// compiled-in default so the deploy command runs with zero arguments; a YAML
// file and DELTASHARE_* environment variables override the defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Compiled-in defaults for a deployment run.
const (
	DefaultResourceGroup    = "deltashare-rg"
	DefaultLocation         = "eastus"
	DefaultPrefix           = "deltashare"
	DefaultRuntime          = "python"
	DefaultRuntimeVersion   = "3.11"
	DefaultFunctionsVersion = "4"
	DefaultOSType           = "linux"
	DefaultStorageSKU       = "Standard_LRS"
	DefaultWaitTimeout      = 3 * time.Minute
	DefaultPollInterval     = 2 * time.Second
)

// Deployment describes one deployment run.
type Deployment struct {
	ResourceGroup    string
	Location         string
	Prefix           string
	Runtime          string
	RuntimeVersion   string
	FunctionsVersion string
	OSType           string
	StorageSKU       string
	SourceDir        string
	WaitTimeout      time.Duration
	PollInterval     time.Duration
}

// UnmarshalYAML overlays only the keys present in the document, so a partial
// config file keeps the compiled-in defaults for everything else. Durations
// are accepted as Go duration strings ("90s", "5m").
func (d *Deployment) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ResourceGroup    string `yaml:"resourceGroup"`
		Location         string `yaml:"location"`
		Prefix           string `yaml:"prefix"`
		Runtime          string `yaml:"runtime"`
		RuntimeVersion   string `yaml:"runtimeVersion"`
		FunctionsVersion string `yaml:"functionsVersion"`
		OSType           string `yaml:"osType"`
		StorageSKU       string `yaml:"storageSku"`
		SourceDir        string `yaml:"sourceDir"`
		WaitTimeout      string `yaml:"waitTimeout"`
		PollInterval     string `yaml:"pollInterval"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	setString := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}
	setString(raw.ResourceGroup, &d.ResourceGroup)
	setString(raw.Location, &d.Location)
	setString(raw.Prefix, &d.Prefix)
	setString(raw.Runtime, &d.Runtime)
	setString(raw.RuntimeVersion, &d.RuntimeVersion)
	setString(raw.FunctionsVersion, &d.FunctionsVersion)
	setString(raw.OSType, &d.OSType)
	setString(raw.StorageSKU, &d.StorageSKU)
	setString(raw.SourceDir, &d.SourceDir)

	if raw.WaitTimeout != "" {
		parsed, err := time.ParseDuration(raw.WaitTimeout)
		if err != nil {
			return fmt.Errorf("invalid waitTimeout: %w", err)
		}
		d.WaitTimeout = parsed
	}
	if raw.PollInterval != "" {
		parsed, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid pollInterval: %w", err)
		}
		d.PollInterval = parsed
	}
	return nil
}

// Default returns a Deployment populated with the compiled-in defaults.
func Default() Deployment {
	return Deployment{
		ResourceGroup:    DefaultResourceGroup,
		Location:         DefaultLocation,
		Prefix:           DefaultPrefix,
		Runtime:          DefaultRuntime,
		RuntimeVersion:   DefaultRuntimeVersion,
		FunctionsVersion: DefaultFunctionsVersion,
		OSType:           DefaultOSType,
		StorageSKU:       DefaultStorageSKU,
		SourceDir:        ".",
		WaitTimeout:      DefaultWaitTimeout,
		PollInterval:     DefaultPollInterval,
	}
}

// Load returns the defaults overlaid with the YAML file at path (when path is
// non-empty) and then with DELTASHARE_* environment variables.
func Load(path string) (Deployment, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Deployment{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Deployment{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Deployment) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("DELTASHARE_RESOURCE_GROUP", &cfg.ResourceGroup)
	setString("DELTASHARE_LOCATION", &cfg.Location)
	setString("DELTASHARE_PREFIX", &cfg.Prefix)
	setString("DELTASHARE_SOURCE_DIR", &cfg.SourceDir)

	if v := os.Getenv("DELTASHARE_WAIT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WaitTimeout = d
		}
	}
}
