// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bosun-foundation/bosun/lib/process"
)

// CommandRunner spawns a command, waits for it, and returns its
// combined output. The default runner execs for real; tests substitute
// one to observe or suppress spawns.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// FileSystemImageConfig holds configuration for creating a
// FileSystemImageSandbox.
type FileSystemImageConfig struct {
	// SandboxName is the directory name under the host run directory.
	// Defaults to SandboxName.
	SandboxName string

	// Environment supplies the containerizer-injected paths. Its
	// HostSandboxDir is required.
	Environment Environment

	// User is the account that will own the sandbox directory. Empty
	// leaves ownership to the umask.
	User string

	// UID, when non-empty, is the decimal uid of an account to
	// provision just-in-time with useradd before ownership is applied.
	// Used for container images that do not already carry User.
	UID string

	// UseraddPath is the account-provisioning binary. Defaults to
	// "useradd", resolved via PATH.
	UseraddPath string

	// Runner spawns the provisioning command. Defaults to a real exec.
	Runner CommandRunner

	// Logger for sandbox operations. Defaults to slog.Default().
	Logger *slog.Logger
}

// FileSystemImageSandbox prepares the sandbox for a task provisioned
// from a filesystem image. The task's view of its sandbox is a mount
// supplied by the container runtime rather than a literal host
// directory, so creation first symlinks the predictable host-side path
// to that mount, optionally provisions the task's account, and then
// runs the plain directory sequence through the symlink.
type FileSystemImageSandbox struct {
	directory *DirectorySandbox
	env       Environment
	user      string
	uid       string
	useradd   string
	run       CommandRunner
	logger    *slog.Logger
}

// NewFileSystemImageSandbox builds the sandbox from config. The root
// is the host sandbox path: Environment.HostSandboxDir joined with the
// sandbox name. It fails when HostSandboxDir is unset, since every
// later step depends on it.
func NewFileSystemImageSandbox(config FileSystemImageConfig) (*FileSystemImageSandbox, error) {
	if config.Environment.HostSandboxDir == "" {
		return nil, fmt.Errorf("%s not set in executor environment", HostSandboxDirVariable)
	}

	name := config.SandboxName
	if name == "" {
		name = SandboxName
	}

	useradd := config.UseraddPath
	if useradd == "" {
		useradd = "useradd"
	}

	runner := config.Runner
	if runner == nil {
		runner = runCommand
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	root := filepath.Join(config.Environment.HostSandboxDir, name)
	directory := NewDirectorySandbox(root, config.User)
	directory.SetLogger(logger)

	return &FileSystemImageSandbox{
		directory: directory,
		env:       config.Environment,
		user:      config.User,
		uid:       config.UID,
		useradd:   useradd,
		run:       runner,
		logger:    logger,
	}, nil
}

// Root returns the host-side sandbox path.
func (s *FileSystemImageSandbox) Root() string {
	return s.directory.Root()
}

// Chrooted reports false: the symlink wires paths, it does not chroot.
func (s *FileSystemImageSandbox) Chrooted() bool {
	return false
}

// Exists reports whether a filesystem entry exists at Root.
func (s *FileSystemImageSandbox) Exists() bool {
	return s.directory.Exists()
}

// Create wires the host-to-container symlink, provisions the task's
// account when a uid was supplied, and then composes the directory
// variant's creation sequence on the symlinked root. Later steps run
// only when every earlier step succeeded.
func (s *FileSystemImageSandbox) Create(ctx context.Context) error {
	if err := s.wireSymlink(); err != nil {
		return err
	}
	if err := s.provisionUser(ctx); err != nil {
		return err
	}
	return s.directory.Create(ctx)
}

// Destroy recursively removes the sandbox via the directory variant.
func (s *FileSystemImageSandbox) Destroy() error {
	return s.directory.Destroy()
}

// wireSymlink gives the container a directory structure similar to the
// host. The host sandbox path (for example "<run-root>/runs/RUN1/sandbox")
// becomes a symlink to the container-side mount named by MESOS_SANDBOX
// (typically /mnt/mesos/sandbox), after its parent run directory is
// created. An existing entry at the link path is a failure, not a
// reuse: sandboxes are never pooled.
func (s *FileSystemImageSandbox) wireSymlink() error {
	hostSandbox := s.directory.Root()
	parent := filepath.Dir(hostSandbox)

	s.logger.Debug("creating host sandbox parent", "path", parent)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return creationErrorf("mkdir %s: %w", parent, err)
	}

	s.logger.Debug("linking host sandbox to container sandbox",
		"link", hostSandbox,
		"target", s.env.ContainerSandboxPath)
	if err := os.Symlink(s.env.ContainerSandboxPath, hostSandbox); err != nil {
		return creationErrorf("symlink %s -> %s: %w", hostSandbox, s.env.ContainerSandboxPath, err)
	}

	return nil
}

// provisionUser creates the task's account inside the image when a uid
// was supplied at construction. -l skips lastlog/faillog allocation for
// arbitrary uids, -m creates the home directory at the container-side
// sandbox mount. The spawn is synchronous with no timeout: this runs
// once per task, before task code starts.
func (s *FileSystemImageSandbox) provisionUser(ctx context.Context) error {
	if s.uid == "" {
		s.logger.Debug("no command uid supplied, not creating a user")
		return nil
	}

	home := s.env.ContainerSandboxPath
	args := []string{"-d", home, "-l", "-m", "-u", s.uid, s.user}
	s.logger.Info("provisioning sandbox user",
		"useradd", s.useradd,
		"user", s.user,
		"uid", s.uid,
		"home", home)

	output, err := s.run(ctx, s.useradd, args...)
	if err != nil {
		if code, ok := process.ExitStatus(err); ok {
			return creationErrorf("creating user %s: %s exited with code %d: %s",
				s.user, s.useradd, code, strings.TrimSpace(string(output)))
		}
		return creationErrorf("creating user %s: running %s: %w", s.user, s.useradd, err)
	}

	return nil
}
