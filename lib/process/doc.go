// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint and child-process helpers
// for Bosun binaries.
//
//   - [Fatal] reports an unrecoverable error to stderr and exits. Use
//     it in main() for errors from run() where the structured logger
//     may not be initialized yet.
//   - [ExitStatus] extracts the exit code from an error returned by a
//     spawned child (useradd, containerizer hooks). Sandbox creation
//     reports provisioning failures with the child's exit code and
//     captured output, and this is where the code comes from.
//
// This package depends on no other Bosun packages.
package process
