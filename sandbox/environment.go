// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"os"
	"strings"
)

// Environment variable names injected into the executor's process
// environment by the containerizer before any sandbox is created.
const (
	// HostSandboxDirVariable names the host-side run directory for the
	// task. The filesystem-image sandbox root is created under it.
	HostSandboxDirVariable = "MESOS_DIRECTORY"

	// ContainerSandboxVariable names the container-side sandbox mount.
	// The host-side root is symlinked to it, and it serves as the home
	// directory for just-in-time provisioned accounts.
	ContainerSandboxVariable = "MESOS_SANDBOX"

	// CommandUIDVariable optionally names the numeric uid to provision
	// for the task's account inside a Docker container whose image
	// lacks it.
	CommandUIDVariable = "MESOS_COMMAND_UID"
)

// Environment captures the containerizer-injected inputs the sandbox
// layer consumes. It is an explicit snapshot: components receive it as
// a parameter and never read the process environment themselves, so a
// test or a caller can substitute values without mutating globals.
type Environment struct {
	// HostSandboxDir is the value of MESOS_DIRECTORY. Required for the
	// filesystem-image variant, unused by the plain directory variant.
	HostSandboxDir string

	// ContainerSandboxPath is the value of MESOS_SANDBOX.
	ContainerSandboxPath string

	// CommandUID is the value of MESOS_COMMAND_UID with surrounding
	// whitespace trimmed. Empty means no account provisioning.
	CommandUID string
}

// EnvironmentFromOS snapshots the process environment. Call it once in
// the executor before sandbox selection; the MESOS_* variables must
// already be set by the containerizer at that point.
func EnvironmentFromOS() Environment {
	return Environment{
		HostSandboxDir:       os.Getenv(HostSandboxDirVariable),
		ContainerSandboxPath: os.Getenv(ContainerSandboxVariable),
		CommandUID:           strings.TrimSpace(os.Getenv(CommandUIDVariable)),
	}
}
