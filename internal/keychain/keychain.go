// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keychain stores small secrets, such as a remembered keyword.
//
// On macOS secrets go to the login Keychain as generic passwords:
//   - Service: "com.flowerpassword"
//   - Account: the secret key (e.g. "saved_keyword")
//   - Label: "flowerpassword: <key>"
//
// They are marked AccessibleWhenUnlockedThisDeviceOnly and never synced.
// Other platforms use SettingsStore, which keeps them in the database.
package keychain

import "errors"

// ServiceName is the Keychain service attribute for all secrets.
const ServiceName = "com.flowerpassword"

// ErrNotFound is returned when a secret does not exist in the store.
var ErrNotFound = errors.New("secret not found")

// ErrUnavailable is returned by NewSystemStore where no OS keychain exists.
var ErrUnavailable = errors.New("system keychain not available on this platform")

// Store is the interface for secret storage operations.
type Store interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}
