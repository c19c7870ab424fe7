// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"time"

	"github.com/toeirei/flowerpassword/internal/model"
)

// HistoryStore persists the codes a user has derived passwords for.
type HistoryStore interface {
	// ListHistory returns all items, most recently used first.
	ListHistory(ctx context.Context) ([]model.HistoryItem, error)
	// FindHistoryByCode returns (nil, nil) when the code is unknown.
	FindHistoryByCode(ctx context.Context, code string) (*model.HistoryItem, error)
	// TouchHistory inserts code, or moves its timestamp to at if present.
	TouchHistory(ctx context.Context, code string, at time.Time) (*model.HistoryItem, error)
	DeleteHistory(ctx context.Context, id int64) error
	ClearHistory(ctx context.Context) error
	// ImportHistory merges items by code, keeping the newer timestamp.
	// With replace set the table is emptied first.
	ImportHistory(ctx context.Context, items []model.HistoryItem, replace bool) error
}

// SettingsStore is a small string key/value table.
type SettingsStore interface {
	GetSetting(ctx context.Context, name string) (string, bool, error)
	SetSetting(ctx context.Context, name, value string) error
	DeleteSetting(ctx context.Context, name string) error
}

// Store is everything the application persists.
type Store interface {
	HistoryStore
	SettingsStore
	DBType() string
	Close() error
}
