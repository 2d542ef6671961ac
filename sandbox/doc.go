// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

// Package sandbox manages the lifecycle of per-task working directories
// on a Bosun worker.
//
// The central type is [Sandbox], a small capability interface (root
// path, nominal chroot flag, existence check, create, destroy) with two
// concrete variants. [DirectorySandbox] is a plain directory chowned to
// a designated account and narrowed to mode 0700, the isolation
// mechanism on shared multi-tenant hosts. [FileSystemImageSandbox]
// serves tasks provisioned from a filesystem image: it first wires a
// symlink from the host-side run directory to the container-side mount
// supplied by the containerizer, optionally provisions a just-in-time
// OS account via useradd, and then composes the directory variant's
// creation sequence on the symlinked path. Composition is deliberate:
// the image variant holds a DirectorySandbox and invokes its steps
// explicitly rather than overriding them.
//
// [DefaultSandboxProvider] selects the variant from an assigned task's
// container declaration (none, Mesos image, Docker) and the
// containerizer-injected [Environment] (MESOS_DIRECTORY, MESOS_SANDBOX,
// MESOS_COMMAND_UID). All environment reads happen through Environment;
// no component calls os.Getenv on its own.
//
// Failures during Create and Destroy are reported as [CreationError]
// and [DeletionError]. There is no rollback: a directory created before
// a later ownership step fails stays on disk, and the calling executor
// decides whether to retry the whole sequence or fail the task. Destroy
// of an absent sandbox succeeds.
//
// [Validator] offers optional non-mutating preflight checks (parent
// writability, useradd availability, chown privilege). Create never
// runs them implicitly; failures always surface from the real
// operations.
//
// The package prepares sandboxes; it does not run task code, and no
// variant performs an actual chroot or namespace isolation syscall.
package sandbox
