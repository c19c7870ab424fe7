// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"time"
)

type Client interface {
	// --- Lifecycle ---

	// Close releases the database connection.
	Close(ctx context.Context) error

	// --- Derivation ---

	// Generate derives the password for code. It does not touch the history.
	Generate(ctx context.Context, keyword, code string) (string, error)

	// GenerateAndRecord derives the password and records code in the history.
	GenerateAndRecord(ctx context.Context, keyword, code string) (string, error)

	// --- History ---

	ListHistory(ctx context.Context) ([]HistoryEntry, error)

	DeleteHistory(ctx context.Context, codes ...string) error

	ClearHistory(ctx context.Context) error
}

// HistoryEntry is one stored code.
type HistoryEntry struct {
	Code     string
	LastUsed time.Time
}
