package keychain

import (
	"context"
	"fmt"
	"time"

	"github.com/toeirei/flowerpassword/internal/db"
)

const settingsPrefix = "secret/"

// SettingsStore keeps secrets in the application settings table. It is the
// fallback where no OS keychain is available.
type SettingsStore struct {
	settings db.SettingsStore
	timeout  time.Duration
}

// NewSettingsStore wraps a settings table.
func NewSettingsStore(s db.SettingsStore) *SettingsStore {
	return &SettingsStore{settings: s, timeout: 5 * time.Second}
}

func (s *SettingsStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *SettingsStore) Set(key, value string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.settings.SetSetting(ctx, settingsPrefix+key, value); err != nil {
		return fmt.Errorf("settings set %q: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) Get(key string) (string, error) {
	ctx, cancel := s.ctx()
	defer cancel()
	v, ok, err := s.settings.GetSetting(ctx, settingsPrefix+key)
	if err != nil {
		return "", fmt.Errorf("settings get %q: %w", key, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

func (s *SettingsStore) Delete(key string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.settings.DeleteSetting(ctx, settingsPrefix+key); err != nil {
		return fmt.Errorf("settings delete %q: %w", key, err)
	}
	return nil
}
