// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"context"
	"log/slog"
	"os"

	"github.com/bosun-foundation/bosun/lib/userdb"
)

// DirectorySandbox is a plain directory on the host filesystem, owned
// by a designated OS account when one is set. Ownership plus mode 0700
// is the isolation mechanism: on a shared worker, each task's sandbox
// is unreadable to every other task owner. The calling process must
// hold chown privilege for that to work.
type DirectorySandbox struct {
	root   string
	user   string
	logger *slog.Logger
}

// NewDirectorySandbox returns a sandbox at root. If user is non-empty,
// Create chowns the directory to that account and narrows its mode to
// 0700; if empty, ownership and mode are left to the process umask.
func NewDirectorySandbox(root, user string) *DirectorySandbox {
	return &DirectorySandbox{
		root:   root,
		user:   user,
		logger: slog.Default(),
	}
}

// SetLogger replaces the logger used for per-step debug output.
func (s *DirectorySandbox) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Root returns the sandbox directory path.
func (s *DirectorySandbox) Root() string {
	return s.root
}

// Chrooted reports false: the directory variant performs no chroot.
func (s *DirectorySandbox) Chrooted() bool {
	return false
}

// Exists reports whether a filesystem entry exists at Root.
func (s *DirectorySandbox) Exists() bool {
	_, err := os.Stat(s.root)
	return err == nil
}

// Create makes the sandbox directory and applies ownership.
//
// The sequence is: mkdir -p, then (with a user set) passwd resolution,
// chown to the account's uid and primary gid, and chmod 0700. The first
// failing step aborts with a *CreationError; earlier steps are not
// rolled back, so a directory created before a failed chown stays on
// disk for the executor to deal with.
func (s *DirectorySandbox) Create(ctx context.Context) error {
	s.logger.Debug("creating sandbox directory", "root", s.root)
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return creationErrorf("mkdir %s: %w", s.root, err)
	}

	if s.user == "" {
		return nil
	}

	owner, err := userdb.Lookup(s.user)
	if err != nil {
		if userdb.IsUnknownUser(err) {
			return creationErrorf("sandbox user does not exist: %s", s.user)
		}
		return creationErrorf("resolving sandbox user %s: %w", s.user, err)
	}

	s.logger.Debug("chown sandbox",
		"root", s.root,
		"user", s.user,
		"group", userdb.GroupName(owner.GID))
	if err := os.Chown(s.root, owner.UID, owner.GID); err != nil {
		return creationErrorf("chown %s to %s: %w", s.root, s.user, err)
	}

	s.logger.Debug("chmod sandbox", "root", s.root, "mode", "0700")
	if err := os.Chmod(s.root, 0o700); err != nil {
		return creationErrorf("chmod %s: %w", s.root, err)
	}

	return nil
}

// Destroy recursively removes the sandbox. Removing an absent root is
// not an error, so Destroy is idempotent once it has succeeded.
func (s *DirectorySandbox) Destroy() error {
	if err := os.RemoveAll(s.root); err != nil {
		return &DeletionError{Err: err}
	}
	return nil
}
