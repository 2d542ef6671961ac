// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import "testing"

func TestEnvironmentFromOS(t *testing.T) {
	t.Setenv(HostSandboxDirVariable, "/var/lib/bosun/runs/run1")
	t.Setenv(ContainerSandboxVariable, "/mnt/mesos/sandbox")
	t.Setenv(CommandUIDVariable, " 1500\n")

	env := EnvironmentFromOS()
	if env.HostSandboxDir != "/var/lib/bosun/runs/run1" {
		t.Errorf("HostSandboxDir = %q", env.HostSandboxDir)
	}
	if env.ContainerSandboxPath != "/mnt/mesos/sandbox" {
		t.Errorf("ContainerSandboxPath = %q", env.ContainerSandboxPath)
	}
	// The containerizer injects the uid with stray whitespace; it must
	// come back trimmed.
	if env.CommandUID != "1500" {
		t.Errorf("CommandUID = %q, want 1500", env.CommandUID)
	}
}

func TestEnvironmentFromOSUnset(t *testing.T) {
	t.Setenv(HostSandboxDirVariable, "")
	t.Setenv(ContainerSandboxVariable, "")
	t.Setenv(CommandUIDVariable, "")

	env := EnvironmentFromOS()
	if env != (Environment{}) {
		t.Errorf("expected zero Environment, got %+v", env)
	}
}
