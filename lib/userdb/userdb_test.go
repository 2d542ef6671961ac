// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package userdb

import (
	"os"
	"os/user"
	"strconv"
	"testing"
)

func TestLookupCurrentUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Fatalf("user.Current failed: %v", err)
	}

	resolved, err := Lookup(current.Username)
	if err != nil {
		t.Fatalf("Lookup(%q) failed: %v", current.Username, err)
	}

	if resolved.UID != os.Getuid() {
		t.Errorf("uid = %d, want %d", resolved.UID, os.Getuid())
	}
	if got := strconv.Itoa(resolved.GID); got != current.Gid {
		t.Errorf("gid = %s, want %s", got, current.Gid)
	}
	if resolved.Name != current.Username {
		t.Errorf("name = %q, want %q", resolved.Name, current.Username)
	}
}

func TestLookupUnknownUser(t *testing.T) {
	_, err := Lookup("bosun-no-such-account")
	if err == nil {
		t.Fatal("expected error for nonexistent user")
	}
	if !IsUnknownUser(err) {
		t.Errorf("IsUnknownUser = false for %v", err)
	}
}

func TestIsUnknownUserOtherError(t *testing.T) {
	if IsUnknownUser(os.ErrPermission) {
		t.Error("IsUnknownUser = true for os.ErrPermission")
	}
	if IsUnknownUser(nil) {
		t.Error("IsUnknownUser = true for nil")
	}
}

func TestGroupNameFallback(t *testing.T) {
	// A gid that is vanishingly unlikely to exist: expect the decimal
	// fallback rather than an error.
	if got := GroupName(1<<30 + 12345); got != strconv.Itoa(1<<30+12345) {
		t.Errorf("GroupName fallback = %q", got)
	}
}

func TestGroupNameCurrent(t *testing.T) {
	gid := os.Getgid()
	name := GroupName(gid)
	if name == "" {
		t.Fatalf("GroupName(%d) returned empty string", gid)
	}
}
