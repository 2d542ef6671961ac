// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

// bosun-sandbox creates, inspects, and destroys per-task sandboxes.
//
// It is operator tooling around the sandbox package: the executor
// consumes the package directly, this binary exists for provisioning
// dry-runs and for cleaning up after failed tasks.
//
// Usage:
//
//	bosun-sandbox create --task <file.jsonc> [flags]
//	bosun-sandbox destroy --task <file.jsonc> [flags]
//	bosun-sandbox status --task <file.jsonc> [flags]
//	bosun-sandbox validate --task <file.jsonc> [flags]
package main
