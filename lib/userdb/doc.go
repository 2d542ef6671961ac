// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

// Package userdb resolves names against the system user and group
// databases for sandbox ownership assignment.
//
// [Lookup] resolves a user name to its numeric uid and primary gid, the
// pair applied to a sandbox directory after creation. [IsUnknownUser]
// distinguishes "no such account" from conversion or database failures,
// since callers report the two differently.
//
// [GroupName] resolves a gid to a group name for log output only; when
// the lookup fails it falls back to the decimal gid rather than
// returning an error, because nothing correctness-relevant depends on
// the name.
//
// This package depends on no other Bosun packages.
package userdb
