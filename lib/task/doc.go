// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

// Package task defines the assigned-task descriptor that the scheduler
// hands to a worker when it places a task. The sandbox layer reads it
// to decide which sandbox variant to build; nothing in this repository
// mutates it.
//
// [Container] is a closed variant: a task runs with no container, a
// Mesos container (optionally backed by a filesystem image), or a
// Docker container. [Container.IsDocker] and [Container.HasImage] are
// the two classifications the sandbox provider branches on.
//
// Descriptors are authored on disk as JSONC (JSON extended with
// comments and trailing commas) for operator tooling; [ReadFile] and
// [Parse] handle that format. The executor itself receives descriptors
// over its scheduler channel already decoded and never touches these
// functions.
//
// This package depends on no other Bosun packages.
package task
