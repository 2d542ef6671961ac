// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"os"
	"path/filepath"
	"testing"
)

func findResult(t *testing.T, v *Validator, name string) ValidationResult {
	t.Helper()
	for _, result := range v.Results() {
		if result.Name == name {
			return result
		}
	}
	t.Fatalf("no result named %q in %+v", name, v.Results())
	return ValidationResult{}
}

func TestValidateWritableAncestor(t *testing.T) {
	v := NewValidator()

	// The path does not exist; its nearest existing ancestor (the temp
	// dir) is writable.
	v.ValidateWritableAncestor("root", filepath.Join(t.TempDir(), "runs", "run1", "sandbox"))
	if result := findResult(t, v, "root"); !result.Passed {
		t.Errorf("expected pass, got %+v", result)
	}
	if v.HasErrors() {
		t.Error("HasErrors() = true")
	}
}

func TestValidateWritableAncestorFailure(t *testing.T) {
	skipIfRoot(t)

	locked := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(locked, 0o555); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	v := NewValidator()
	v.ValidateWritableAncestor("root", filepath.Join(locked, "run1", "sandbox"))
	if result := findResult(t, v, "root"); result.Passed {
		t.Errorf("expected failure, got %+v", result)
	}
	if !v.HasErrors() {
		t.Error("HasErrors() = false")
	}
}

func TestValidateUseradd(t *testing.T) {
	v := NewValidator()
	// sh stands in for useradd: any executable on PATH passes.
	v.ValidateUseradd("sh")
	if result := findResult(t, v, "useradd"); !result.Passed {
		t.Errorf("expected pass for sh, got %+v", result)
	}

	v = NewValidator()
	v.ValidateUseradd("/bosun-no-such-binary")
	if result := findResult(t, v, "useradd"); result.Passed {
		t.Errorf("expected failure, got %+v", result)
	}
	if !v.HasErrors() {
		t.Error("HasErrors() = false for missing binary")
	}
}

func TestValidateChownPrivilege(t *testing.T) {
	v := NewValidator()
	v.ValidateChownPrivilege("")
	if result := findResult(t, v, "chown"); !result.Passed || result.Warning {
		t.Errorf("expected clean pass for empty owner, got %+v", result)
	}

	v = NewValidator()
	v.ValidateChownPrivilege(currentUsername(t))
	if result := findResult(t, v, "chown"); !result.Passed {
		t.Errorf("expected pass for current user, got %+v", result)
	}

	if os.Geteuid() != 0 {
		v = NewValidator()
		v.ValidateChownPrivilege("bosun-other-account")
		result := findResult(t, v, "chown")
		if !result.Warning {
			t.Errorf("expected warning for foreign owner without root, got %+v", result)
		}
		// A warning is not an error.
		if v.HasErrors() {
			t.Error("HasErrors() = true for a warning")
		}
	}
}

func TestValidateFileSystemImageSandbox(t *testing.T) {
	v := NewValidator()
	v.ValidateFileSystemImageSandbox(Environment{}, "", "", "")
	if !v.HasErrors() {
		t.Error("expected errors for an empty environment")
	}

	v = NewValidator()
	v.ValidateFileSystemImageSandbox(testEnvironment(t), currentUsername(t), "", "")
	if v.HasErrors() {
		t.Errorf("unexpected errors: %+v", v.Results())
	}
}
