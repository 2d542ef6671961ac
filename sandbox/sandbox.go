// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"context"
	"fmt"
)

// SandboxName is the fixed directory name of a task's sandbox within
// its run directory. Task code addresses its working directory through
// this name, so it is a protocol constant rather than configuration.
const SandboxName = "sandbox"

// Sandbox is the capability contract for a per-task working directory.
// One instance serves exactly one task for exactly one caller: at most
// one Create followed by at most one Destroy, with no internal locking.
type Sandbox interface {
	// Root returns the absolute path of the sandbox directory.
	Root() string

	// Chrooted reports whether the sandbox is a chroot. The flag is
	// nominal: both current variants return false, and no variant
	// performs a chroot or namespace isolation syscall. Callers must
	// not infer containment from it.
	Chrooted() bool

	// Exists reports whether a filesystem entry exists at Root.
	Exists() bool

	// Create performs every step needed to make the sandbox usable.
	// It fails with a *CreationError on the first failing step and
	// leaves any partially-constructed filesystem state in place.
	Create(ctx context.Context) error

	// Destroy recursively removes Root and everything under it,
	// failing with a *DeletionError. Destroying an absent sandbox is
	// not an error.
	Destroy() error
}

// CreationError reports a failed sandbox creation: directory creation,
// user-database miss, ownership or permission change, symlink wiring,
// or account provisioning. The filesystem may hold partial state from
// steps that succeeded before the failure.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("creating sandbox: %v", e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// DeletionError reports a failed sandbox teardown.
type DeletionError struct {
	Err error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("destroying sandbox: %v", e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// creationErrorf wraps a formatted cause as a *CreationError.
func creationErrorf(format string, args ...any) *CreationError {
	return &CreationError{Err: fmt.Errorf(format, args...)}
}
