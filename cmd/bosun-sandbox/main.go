// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bosun-foundation/bosun/lib/config"
	"github.com/bosun-foundation/bosun/lib/process"
	"github.com/bosun-foundation/bosun/lib/task"
	"github.com/bosun-foundation/bosun/lib/version"
	"github.com/bosun-foundation/bosun/sandbox"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "create":
		err = createCmd(args)
	case "destroy":
		err = destroyCmd(args)
	case "status":
		err = statusCmd(args)
	case "validate":
		err = validateCmd(args)
	case "version", "--version", "-v":
		fmt.Printf("bosun-sandbox %s\n", version.Info())
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		process.Fatal(err)
	}
}

func printUsage() {
	fmt.Print(`bosun-sandbox - Manage per-task sandboxes on a Bosun worker

USAGE
    bosun-sandbox <command> --task <file.jsonc> [flags]

COMMANDS
    create    Create the sandbox for an assigned task
    destroy   Recursively remove an assigned task's sandbox
    status    Show sandbox variant, root path, and existence
    validate  Run preflight checks without touching the filesystem
    version   Show version

EXAMPLES
    # Create the sandbox for a task descriptor
    bosun-sandbox create --task /var/lib/bosun/tasks/web-0.jsonc

    # Check what would be built, and whether it can be
    bosun-sandbox status --task web-0.jsonc
    bosun-sandbox validate --task web-0.jsonc

    # Clean up after a failed task
    bosun-sandbox destroy --task web-0.jsonc

ENVIRONMENT
    BOSUN_CONFIG       Path to bosun.yaml (or use --config)
    BOSUN_DEBUG        Enable debug logging
    MESOS_DIRECTORY    Host-side run directory (set by the containerizer)
    MESOS_SANDBOX      Container-side sandbox mount (set by the containerizer)
    MESOS_COMMAND_UID  Numeric uid for just-in-time user provisioning
`)
}

// setup holds everything a subcommand needs after flag parsing.
type setup struct {
	cfg      *config.Config
	assigned *task.AssignedTask
	env      sandbox.Environment
	logger   *slog.Logger
}

// parseSetup parses the shared --task/--config flags, loads
// configuration, and reads the task descriptor.
func parseSetup(name string, args []string) (*setup, error) {
	flags := pflag.NewFlagSet(name, pflag.ExitOnError)
	taskFile := flags.String("task", "", "path to the assigned-task descriptor (JSONC)")
	configFile := flags.String("config", "", "path to bosun.yaml")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if *taskFile == "" {
		return nil, fmt.Errorf("--task is required")
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	assigned, err := task.ReadFile(*taskFile)
	if err != nil {
		return nil, err
	}

	logLevel := slog.LevelInfo
	if cfg.Logging.Debug || os.Getenv("BOSUN_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	return &setup{
		cfg:      cfg,
		assigned: assigned,
		env:      sandbox.EnvironmentFromOS(),
		logger:   logger,
	}, nil
}

// loadConfig loads from --config, then BOSUN_CONFIG, then defaults.
// The library itself never falls back; the CLI does, because dry-runs
// on development machines should work without a config file.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv("BOSUN_CONFIG") != "" {
		return config.Load()
	}
	return config.Default(), nil
}

func (s *setup) provider() *sandbox.DefaultSandboxProvider {
	return sandbox.NewDefaultSandboxProvider(sandbox.ProviderConfig{
		Environment: s.env,
		SandboxName: s.cfg.Sandbox.Name,
		UseraddPath: s.cfg.Sandbox.Useradd,
		Logger:      s.logger,
	})
}

// createCmd implements the "create" command.
func createCmd(args []string) error {
	s, err := parseSetup("create", args)
	if err != nil {
		return err
	}

	sb, err := s.provider().FromAssignedTask(s.assigned)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.logger.Info("creating sandbox", "task", s.assigned.TaskID, "root", sb.Root())
	if err := sb.Create(ctx); err != nil {
		return err
	}

	fmt.Println(sb.Root())
	return nil
}

// destroyCmd implements the "destroy" command.
func destroyCmd(args []string) error {
	s, err := parseSetup("destroy", args)
	if err != nil {
		return err
	}

	sb, err := s.provider().FromAssignedTask(s.assigned)
	if err != nil {
		return err
	}

	s.logger.Info("destroying sandbox", "task", s.assigned.TaskID, "root", sb.Root())
	return sb.Destroy()
}

// statusCmd implements the "status" command.
func statusCmd(args []string) error {
	s, err := parseSetup("status", args)
	if err != nil {
		return err
	}

	sb, err := s.provider().FromAssignedTask(s.assigned)
	if err != nil {
		return err
	}

	variant := "directory"
	if _, ok := sb.(*sandbox.FileSystemImageSandbox); ok {
		variant = "filesystem-image"
	}

	fmt.Printf("task:     %s\n", s.assigned.TaskID)
	fmt.Printf("variant:  %s\n", variant)
	fmt.Printf("root:     %s\n", sb.Root())
	fmt.Printf("exists:   %v\n", sb.Exists())
	fmt.Printf("chrooted: %v\n", sb.Chrooted())
	return nil
}

// validateCmd implements the "validate" command.
func validateCmd(args []string) error {
	s, err := parseSetup("validate", args)
	if err != nil {
		return err
	}

	owner := s.assigned.Task.Job.Role
	container := s.assigned.Task.Container

	v := sandbox.NewValidator()
	if container.IsDocker() || container.HasImage() {
		uid := ""
		if container.IsDocker() {
			uid = s.env.CommandUID
		}
		v.ValidateFileSystemImageSandbox(s.env, owner, uid, s.cfg.Sandbox.Useradd)
	} else {
		root, err := filepath.Abs(s.cfg.Sandbox.Name)
		if err != nil {
			return err
		}
		v.ValidateDirectorySandbox(root, owner)
	}

	for _, result := range v.Results() {
		mark := "ok"
		if result.Warning {
			mark = "warn"
		} else if !result.Passed {
			mark = "FAIL"
		}
		fmt.Printf("[%4s] %-16s %s\n", mark, result.Name, result.Message)
	}

	if v.HasErrors() {
		return fmt.Errorf("validation failed")
	}
	return nil
}
