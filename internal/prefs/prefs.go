// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package prefs manages user preferences: whether the keyword should be
// remembered, and the remembered keyword itself.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/keychain"
	"github.com/toeirei/flowerpassword/internal/logging"
)

const (
	rememberKeywordKey = "remember_keyword"
	savedKeywordKey    = "saved_keyword"
)

// DefaultRememberKeyword is used until the user changes the preference.
const DefaultRememberKeyword = true

// Backend names accepted by SecretStoreFor.
const (
	BackendAuto     = "auto"
	BackendDB       = "db"
	BackendKeychain = "keychain"
)

// Manager reads and writes preferences.
type Manager struct {
	settings db.SettingsStore
	secrets  keychain.Store
}

// NewManager builds a Manager. The keyword goes to secrets, flags to settings.
func NewManager(settings db.SettingsStore, secrets keychain.Store) *Manager {
	return &Manager{settings: settings, secrets: secrets}
}

// SecretStoreFor picks where the remembered keyword is kept.
func SecretStoreFor(backend string, settings db.SettingsStore) (keychain.Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendAuto:
		if s, err := keychain.NewSystemStore(); err == nil {
			return s, nil
		}
		return keychain.NewSettingsStore(settings), nil
	case BackendKeychain:
		return keychain.NewSystemStore()
	case BackendDB:
		return keychain.NewSettingsStore(settings), nil
	default:
		return nil, fmt.Errorf("unknown keyword backend %q (want auto, db or keychain)", backend)
	}
}

// RememberKeyword reports whether the keyword should be persisted.
func (m *Manager) RememberKeyword(ctx context.Context) (bool, error) {
	v, ok, err := m.settings.GetSetting(ctx, rememberKeywordKey)
	if err != nil {
		return DefaultRememberKeyword, fmt.Errorf("read %s: %w", rememberKeywordKey, err)
	}
	if !ok {
		return DefaultRememberKeyword, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logging.Warnf("ignoring malformed %s value %q", rememberKeywordKey, v)
		return DefaultRememberKeyword, nil
	}
	return b, nil
}

// SetRememberKeyword stores the flag. Turning it off forgets the keyword.
func (m *Manager) SetRememberKeyword(ctx context.Context, remember bool) error {
	if err := m.settings.SetSetting(ctx, rememberKeywordKey, strconv.FormatBool(remember)); err != nil {
		return fmt.Errorf("write %s: %w", rememberKeywordKey, err)
	}
	if !remember {
		return m.ClearSavedKeyword(ctx)
	}
	return nil
}

// SavedKeyword returns the remembered keyword, or "" when there is none.
func (m *Manager) SavedKeyword(ctx context.Context) (string, error) {
	remember, err := m.RememberKeyword(ctx)
	if err != nil {
		return "", err
	}
	if !remember {
		return "", nil
	}
	v, err := m.secrets.Get(savedKeywordKey)
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

// SetSavedKeyword remembers keyword. It is a no-op for blank keywords or
// when remembering is switched off.
func (m *Manager) SetSavedKeyword(ctx context.Context, keyword string) error {
	if strings.TrimSpace(keyword) == "" {
		return nil
	}
	remember, err := m.RememberKeyword(ctx)
	if err != nil {
		return err
	}
	if !remember {
		return nil
	}
	return m.secrets.Set(savedKeywordKey, keyword)
}

// ClearSavedKeyword forgets the remembered keyword.
func (m *Manager) ClearSavedKeyword(ctx context.Context) error {
	return m.secrets.Delete(savedKeywordKey)
}
