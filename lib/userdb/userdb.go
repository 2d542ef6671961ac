// Copyright 2026 The Bosun Authors
// SPDX-License-Identifier: Apache-2.0

package userdb

import (
	"errors"
	"fmt"
	"os/user"
	"strconv"
)

// User is a resolved passwd entry: the account name plus the numeric
// uid and primary gid used for ownership changes.
type User struct {
	Name string
	UID  int
	GID  int
}

// Lookup resolves name through the system user database. The returned
// error is a user.UnknownUserError when the account does not exist;
// use [IsUnknownUser] to branch on that case.
func Lookup(name string) (User, error) {
	entry, err := user.Lookup(name)
	if err != nil {
		return User{}, err
	}

	uid, err := strconv.Atoi(entry.Uid)
	if err != nil {
		return User{}, fmt.Errorf("non-numeric uid %q for user %s: %w", entry.Uid, name, err)
	}
	gid, err := strconv.Atoi(entry.Gid)
	if err != nil {
		return User{}, fmt.Errorf("non-numeric gid %q for user %s: %w", entry.Gid, name, err)
	}

	return User{Name: name, UID: uid, GID: gid}, nil
}

// IsUnknownUser reports whether err indicates that the looked-up
// account does not exist, as opposed to a database or conversion
// failure.
func IsUnknownUser(err error) bool {
	var unknown user.UnknownUserError
	return errors.As(err, &unknown)
}

// GroupName returns the group name for gid. Used for diagnostics only:
// when the group database has no entry (or cannot be read), it returns
// the decimal gid instead of failing.
func GroupName(gid int) string {
	group, err := user.LookupGroupId(strconv.Itoa(gid))
	if err != nil {
		return strconv.Itoa(gid)
	}
	return group.Name
}
