// Package config loads the credchain CLI configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/majorcontext/credchain"
)

// Config holds credchain settings from ~/.credchain/config.yaml.
type Config struct {
	// Providers is the chain try order, by source name.
	Providers []string `yaml:"providers"`
	// Region is the AWS region for the STS and Secrets Manager sources.
	Region string `yaml:"region"`
	// RoleARN is the IAM role for the assume-role source.
	RoleARN string `yaml:"role_arn"`
	// SecretID is the secret name or ARN for the secrets-manager source.
	SecretID string `yaml:"secret_id"`
	// Settings is the settings file path for the environment source.
	Settings string `yaml:"settings"`
}

// Default returns the default configuration: the standard provider set
// in its fixed order.
func Default() *Config {
	return &Config{
		Providers: credchain.DefaultProviders(),
	}
}

// Load reads ~/.credchain/config.yaml and applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(filepath.Join(Dir(), "config.yaml")); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// CREDCHAIN_PROVIDERS overrides the chain order, comma-separated.
	if providers := os.Getenv("CREDCHAIN_PROVIDERS"); providers != "" {
		var names []string
		for _, name := range strings.Split(providers, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			cfg.Providers = names
		}
	}

	if region := firstEnv("CREDCHAIN_REGION", "AWS_REGION"); region != "" {
		cfg.Region = region
	}
	if roleARN := os.Getenv("CREDCHAIN_ROLE_ARN"); roleARN != "" {
		cfg.RoleARN = roleARN
	}
	if secretID := os.Getenv("CREDCHAIN_SECRET_ID"); secretID != "" {
		cfg.SecretID = secretID
	}
	if settings := os.Getenv("CREDCHAIN_SETTINGS"); settings != "" {
		cfg.Settings = settings
	}

	return cfg, nil
}

// Apply pushes the resolved values into the CREDCHAIN_* environment
// variables the source factories read, the same way the CLI pushes
// --profile down as CREDCHAIN_PROFILE. Load gives the environment
// precedence over the file, so re-exporting here cannot clobber a
// caller's own variables.
func (c *Config) Apply() {
	if c.Region != "" {
		os.Setenv("CREDCHAIN_REGION", c.Region)
	}
	if c.RoleARN != "" {
		os.Setenv("CREDCHAIN_ROLE_ARN", c.RoleARN)
	}
	if c.SecretID != "" {
		os.Setenv("CREDCHAIN_SECRET_ID", c.SecretID)
	}
	if c.Settings != "" {
		os.Setenv("CREDCHAIN_SETTINGS", c.Settings)
	}
}

// Dir returns the path to ~/.credchain.
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".credchain")
	}
	return filepath.Join(homeDir, ".credchain")
}

// firstEnv returns the value of the first non-empty environment
// variable. Returns empty string if none are set.
func firstEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}
