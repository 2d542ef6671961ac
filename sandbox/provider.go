// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"log/slog"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/bosun-foundation/bosun/lib/task"
)

// SandboxProvider selects and constructs the appropriate Sandbox for
// an assigned task. Selection is pure: no filesystem or process side
// effects beyond building the instance.
type SandboxProvider interface {
	FromAssignedTask(assigned *task.AssignedTask) (Sandbox, error)
}

// ProviderConfig holds configuration for a DefaultSandboxProvider.
type ProviderConfig struct {
	// Environment supplies the containerizer-injected paths and the
	// optional command uid.
	Environment Environment

	// SandboxName overrides the fixed sandbox directory name.
	// Defaults to SandboxName.
	SandboxName string

	// User overrides the sandbox owner for every task. Empty selects
	// the task's job role, falling back to the current process user.
	User string

	// UseraddPath overrides the account-provisioning binary for
	// filesystem-image sandboxes.
	UseraddPath string

	// Runner overrides the command runner used for account
	// provisioning. Defaults to a real exec.
	Runner CommandRunner

	// Logger for sandbox operations. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultSandboxProvider maps a task's container declaration to a
// sandbox variant:
//
//   - Docker container: FileSystemImageSandbox. When the environment
//     carries a command uid, the sandbox provisions the task's user
//     with it; otherwise neither user nor uid is set and the image's
//     existing accounts are left alone.
//   - Mesos container with a filesystem image: FileSystemImageSandbox
//     owned by the sandbox user, no provisioning.
//   - No container: DirectorySandbox at the absolute sandbox path in
//     the executor's working directory, owned by the sandbox user.
type DefaultSandboxProvider struct {
	config ProviderConfig
	logger *slog.Logger
}

// NewDefaultSandboxProvider returns a provider using config.
func NewDefaultSandboxProvider(config ProviderConfig) *DefaultSandboxProvider {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultSandboxProvider{config: config, logger: logger}
}

// FromAssignedTask selects and constructs the sandbox for assigned.
func (p *DefaultSandboxProvider) FromAssignedTask(assigned *task.AssignedTask) (Sandbox, error) {
	container := assigned.Task.Container

	switch {
	case container.IsDocker():
		uid := p.config.Environment.CommandUID
		owner := ""
		if uid != "" {
			if _, err := strconv.Atoi(uid); err != nil {
				return nil, fmt.Errorf("%s is not a numeric uid: %q", CommandUIDVariable, uid)
			}
			resolved, err := p.sandboxUser(assigned)
			if err != nil {
				return nil, err
			}
			owner = resolved
		}
		return NewFileSystemImageSandbox(FileSystemImageConfig{
			SandboxName: p.config.SandboxName,
			Environment: p.config.Environment,
			User:        owner,
			UID:         uid,
			UseraddPath: p.config.UseraddPath,
			Runner:      p.config.Runner,
			Logger:      p.logger,
		})

	case container.HasImage():
		owner, err := p.sandboxUser(assigned)
		if err != nil {
			return nil, err
		}
		return NewFileSystemImageSandbox(FileSystemImageConfig{
			SandboxName: p.config.SandboxName,
			Environment: p.config.Environment,
			User:        owner,
			UseraddPath: p.config.UseraddPath,
			Runner:      p.config.Runner,
			Logger:      p.logger,
		})

	default:
		owner, err := p.sandboxUser(assigned)
		if err != nil {
			return nil, err
		}
		name := p.config.SandboxName
		if name == "" {
			name = SandboxName
		}
		root, err := filepath.Abs(name)
		if err != nil {
			return nil, fmt.Errorf("resolving sandbox path: %w", err)
		}
		directory := NewDirectorySandbox(root, owner)
		directory.SetLogger(p.logger)
		return directory, nil
	}
}

// sandboxUser resolves the account that owns the task's sandbox: the
// configured override, else the task's job role, else the current
// process user. The process user is looked up here at call time rather
// than cached at construction, so a setuid transition in the executor
// is picked up.
func (p *DefaultSandboxProvider) sandboxUser(assigned *task.AssignedTask) (string, error) {
	if p.config.User != "" {
		return p.config.User, nil
	}
	if role := assigned.Task.Job.Role; role != "" {
		return role, nil
	}
	current, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("task %s has no role and the current user is unknown: %w",
			assigned.TaskID, err)
	}
	return current.Username, nil
}
