// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}

	if cfg.Sandbox.Name != "sandbox" {
		t.Errorf("expected sandbox.name=sandbox, got %s", cfg.Sandbox.Name)
	}

	if cfg.Sandbox.Useradd != "useradd" {
		t.Errorf("expected sandbox.useradd=useradd, got %s", cfg.Sandbox.Useradd)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoad_RequiresBosunConfig(t *testing.T) {
	// Save and restore BOSUN_CONFIG.
	origConfig := os.Getenv("BOSUN_CONFIG")
	defer os.Setenv("BOSUN_CONFIG", origConfig)

	// Unset BOSUN_CONFIG - Load() should fail.
	os.Unsetenv("BOSUN_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BOSUN_CONFIG not set, got nil")
	}

	expectedMsg := "BOSUN_CONFIG environment variable not set"
	if !strings.HasPrefix(err.Error(), expectedMsg) {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithBosunConfig(t *testing.T) {
	origConfig := os.Getenv("BOSUN_CONFIG")
	defer os.Setenv("BOSUN_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bosun.yaml")

	configContent := `
environment: staging
paths:
  root: /test/root
sandbox:
  useradd: /usr/sbin/useradd
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("BOSUN_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}
	if cfg.Paths.Root != "/test/root" {
		t.Errorf("expected paths.root=/test/root, got %s", cfg.Paths.Root)
	}
	if cfg.Sandbox.Useradd != "/usr/sbin/useradd" {
		t.Errorf("expected sandbox.useradd=/usr/sbin/useradd, got %s", cfg.Sandbox.Useradd)
	}
	// Name was not overridden and keeps the default.
	if cfg.Sandbox.Name != "sandbox" {
		t.Errorf("expected sandbox.name=sandbox, got %s", cfg.Sandbox.Name)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bosun.yaml")

	configContent := `
environment: production
paths:
  root: /var/lib/bosun
sandbox:
  useradd: /usr/sbin/useradd
production:
  paths:
    runs: /var/lib/bosun/slaves/latest/run
  logging:
    debug: false
staging:
  sandbox:
    name: staging-sandbox
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Paths.Runs != "/var/lib/bosun/slaves/latest/run" {
		t.Errorf("production override not applied, runs = %s", cfg.Paths.Runs)
	}
	// The staging section must not apply when environment is production.
	if cfg.Sandbox.Name != "sandbox" {
		t.Errorf("staging override leaked into production, name = %s", cfg.Sandbox.Name)
	}
}

func TestVariableExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bosun.yaml")

	configContent := `
paths:
  root: /srv/bosun
  runs: ${BOSUN_ROOT}/runs
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Paths.Runs != "/srv/bosun/runs" {
		t.Errorf("expected ${BOSUN_ROOT} expansion, got %s", cfg.Paths.Runs)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "invalid environment"},
		{"missing root", func(c *Config) { c.Paths.Root = "" }, "paths.root is required"},
		{"missing runs", func(c *Config) { c.Paths.Runs = "" }, "paths.runs is required"},
		{"missing name", func(c *Config) { c.Sandbox.Name = "" }, "sandbox.name is required"},
		{"nested name", func(c *Config) { c.Sandbox.Name = "a/b" }, "single path element"},
		{"missing useradd", func(c *Config) { c.Sandbox.Useradd = "" }, "sandbox.useradd is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestEnsurePaths(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := Default()
	cfg.Paths.Root = filepath.Join(tmpDir, "root")
	cfg.Paths.Runs = filepath.Join(tmpDir, "root", "runs")

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths() failed: %v", err)
	}

	for _, path := range []string{cfg.Paths.Root, cfg.Paths.Runs} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", path)
		}
	}
}
