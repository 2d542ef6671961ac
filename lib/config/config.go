// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production worker fleets.
	Production Environment = "production"
)

// Config is the master configuration for a Bosun worker.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Sandbox configures per-task sandbox construction.
	Sandbox SandboxConfig `yaml:"sandbox"`

	// Logging configures structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths   *PathsConfig   `yaml:"paths,omitempty"`
	Sandbox *SandboxConfig `yaml:"sandbox,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for Bosun worker data.
	Root string `yaml:"root"`

	// Runs is where per-task run directories are created by the
	// containerizer. Host-side sandbox paths live underneath it.
	Runs string `yaml:"runs"`
}

// SandboxConfig configures per-task sandbox construction.
type SandboxConfig struct {
	// Name is the directory name created inside each task's run
	// directory. Default: sandbox. Task code sees this path; changing
	// it breaks jobs that hardcode it, so it is configurable only for
	// migration scenarios.
	Name string `yaml:"name"`

	// Useradd is the account-provisioning binary invoked when a task
	// requires a just-in-time user inside a filesystem image.
	// Default: useradd (resolved via PATH).
	Useradd string `yaml:"useradd"`
}

// LoggingConfig configures structured log output.
type LoggingConfig struct {
	// Debug enables debug-level logging of individual sandbox
	// filesystem steps (mkdir, chown, chmod, symlink).
	Debug bool `yaml:"debug"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "bosun")

	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Root: defaultRoot,
			Runs: filepath.Join(defaultRoot, "runs"),
		},
		Sandbox: SandboxConfig{
			Name:    "sandbox",
			Useradd: "useradd",
		},
		Logging: LoggingConfig{
			Debug: false,
		},
	}
}

// Load loads configuration from the BOSUN_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks or defaults - if BOSUN_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("BOSUN_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("BOSUN_CONFIG environment variable not set; " +
			"set it to the path of your bosun.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do not
// override config values - this ensures deterministic, auditable configuration.
// The only expansion performed is ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.Runs != "" {
			c.Paths.Runs = overrides.Paths.Runs
		}
	}

	if overrides.Sandbox != nil {
		if overrides.Sandbox.Name != "" {
			c.Sandbox.Name = overrides.Sandbox.Name
		}
		if overrides.Sandbox.Useradd != "" {
			c.Sandbox.Useradd = overrides.Sandbox.Useradd
		}
	}

	if overrides.Logging != nil {
		// Debug is a bool, so we always apply it from overrides.
		c.Logging.Debug = overrides.Logging.Debug
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"BOSUN_ROOT": c.Paths.Root,
		"HOME":       os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["BOSUN_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Runs = expandVars(c.Paths.Runs, vars)
	c.Sandbox.Useradd = expandVars(c.Sandbox.Useradd, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}
	if c.Paths.Runs == "" {
		errs = append(errs, fmt.Errorf("paths.runs is required"))
	}

	if c.Sandbox.Name == "" {
		errs = append(errs, fmt.Errorf("sandbox.name is required"))
	} else if strings.ContainsRune(c.Sandbox.Name, os.PathSeparator) {
		errs = append(errs, fmt.Errorf("sandbox.name must be a single path element, got %q", c.Sandbox.Name))
	}

	if c.Sandbox.Useradd == "" {
		errs = append(errs, fmt.Errorf("sandbox.useradd is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.Root, c.Paths.Runs} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
