// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when attempting to insert a record that already exists.
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound is returned when an update or delete matched no rows.
var ErrNotFound = errors.New("record not found")

// ErrNotInitialized is returned by package helpers before New or InitDB ran.
var ErrNotInitialized = errors.New("database not initialized")

// MapDBError maps driver-specific unique constraint violations to
// ErrDuplicate. The mapping is string based so this file does not need to
// import any SQL driver.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry, Postgres unique violation (23505), SQLite unique constraint
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
