// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ValidationResult holds the result of a validation check.
type ValidationResult struct {
	Name    string
	Passed  bool
	Message string
	Warning bool // True if this is a warning, not an error.
}

// Validator performs non-mutating preflight checks for a sandbox that
// is about to be created. Create never runs these implicitly; failures
// always surface from the real operations. The checks exist for
// operator tooling that wants to report problems before a task is
// committed to a worker.
type Validator struct {
	results []ValidationResult
	errors  int
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		results: make([]ValidationResult, 0),
	}
}

// Results returns all validation results.
func (v *Validator) Results() []ValidationResult {
	return v.results
}

// HasErrors returns true if any validation failed.
func (v *Validator) HasErrors() bool {
	return v.errors > 0
}

// pass records a successful validation.
func (v *Validator) pass(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
	})
}

// warn records a warning (not a failure).
func (v *Validator) warn(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  true,
		Message: message,
		Warning: true,
	})
}

// fail records a validation failure.
func (v *Validator) fail(name, message string) {
	v.results = append(v.results, ValidationResult{
		Name:    name,
		Passed:  false,
		Message: message,
	})
	v.errors++
}

// ValidateDirectorySandbox runs the checks relevant to a plain
// directory sandbox: root placement and chown privilege.
func (v *Validator) ValidateDirectorySandbox(root, owner string) {
	v.ValidateWritableAncestor("root", root)
	v.ValidateChownPrivilege(owner)
}

// ValidateFileSystemImageSandbox runs the checks relevant to an
// image-backed sandbox: the containerizer environment, symlink
// placement, provisioning tooling, and chown privilege.
func (v *Validator) ValidateFileSystemImageSandbox(env Environment, owner, uid, useraddPath string) {
	if env.HostSandboxDir == "" {
		v.fail("environment", fmt.Sprintf("%s not set", HostSandboxDirVariable))
	} else {
		v.pass("environment", fmt.Sprintf("%s=%s", HostSandboxDirVariable, env.HostSandboxDir))
		v.ValidateWritableAncestor("symlink-parent", env.HostSandboxDir)
	}

	if env.ContainerSandboxPath == "" {
		v.fail("container-sandbox", fmt.Sprintf("%s not set", ContainerSandboxVariable))
	} else {
		v.pass("container-sandbox", fmt.Sprintf("%s=%s", ContainerSandboxVariable, env.ContainerSandboxPath))
	}

	if uid != "" {
		v.ValidateUseradd(useraddPath)
	}
	v.ValidateChownPrivilege(owner)
}

// ValidateWritableAncestor checks that path, or its nearest existing
// ancestor, is writable by this process. Creation will mkdir -p the
// missing tail, so writability of the first existing ancestor is what
// decides whether that succeeds.
func (v *Validator) ValidateWritableAncestor(name, path string) {
	ancestor := path
	for {
		if _, err := os.Stat(ancestor); err == nil {
			break
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		ancestor = parent
	}

	if err := unix.Access(ancestor, unix.W_OK); err != nil {
		v.fail(name, fmt.Sprintf("%s is not writable: %v", ancestor, err))
		return
	}
	v.pass(name, fmt.Sprintf("%s is writable", ancestor))
}

// ValidateUseradd checks that the account-provisioning binary exists
// and is executable.
func (v *Validator) ValidateUseradd(useraddPath string) {
	if useraddPath == "" {
		useraddPath = "useradd"
	}

	path, err := exec.LookPath(useraddPath)
	if err != nil {
		v.fail("useradd", fmt.Sprintf("%s not found: %v", useraddPath, err))
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		v.fail("useradd", fmt.Sprintf("cannot stat %s: %v", path, err))
		return
	}
	if info.Mode()&0o111 == 0 {
		v.fail("useradd", fmt.Sprintf("%s is not executable", path))
		return
	}

	v.pass("useradd", fmt.Sprintf("available: %s", path))
}

// ValidateChownPrivilege checks whether this process can chown the
// sandbox to owner. Chowning to a different account requires root;
// without it the ownership step of creation will fail. Recorded as a
// warning rather than a failure because owner may resolve to the
// current user, in which case the chown is a no-op the kernel permits.
func (v *Validator) ValidateChownPrivilege(owner string) {
	if owner == "" {
		v.pass("chown", "no sandbox owner set, ownership left to umask")
		return
	}

	if os.Geteuid() == 0 {
		v.pass("chown", fmt.Sprintf("running as root, can chown to %s", owner))
		return
	}

	current, err := user.Current()
	if err == nil && current.Username == owner {
		v.pass("chown", fmt.Sprintf("sandbox owner is the current user (%s)", owner))
		return
	}

	v.warn("chown", fmt.Sprintf("not running as root: chown to %s will fail", owner))
}
