// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/generator"
	"github.com/toeirei/flowerpassword/internal/logging"
)

// ErrInvalidInput is returned when keyword or code is blank.
var ErrInvalidInput = generator.ErrInvalidInput

type BunClient struct {
	config Config
	store  db.Store
	now    func() time.Time
}

// *BunClient implements Client
var _ Client = (*BunClient)(nil)

// NewBunClient opens the configured database, runs migrations and returns
// a ready client. The store is private to the client and is not installed
// as the process default.
func NewBunClient(config Config) (*BunClient, error) {
	if config.DatabaseType == "" {
		config.DatabaseType = "sqlite"
	}
	if config.DatabaseUri == "" {
		config.DatabaseUri = ":memory:"
	}
	if config.LogLevel >= Debug {
		logging.SetDebug(true)
		db.SetDebug(true)
	}
	store, err := db.NewStoreFromDSN(config.DatabaseType, config.DatabaseUri)
	if err != nil {
		return nil, err
	}
	return &BunClient{config: config, store: store, now: time.Now}, nil
}

func (c *BunClient) Close(ctx context.Context) error {
	return c.store.Close()
}

func (c *BunClient) Generate(ctx context.Context, keyword, code string) (string, error) {
	return generator.Generate(keyword, code)
}

func (c *BunClient) GenerateAndRecord(ctx context.Context, keyword, code string) (string, error) {
	pw, err := generator.Generate(keyword, code)
	if err != nil {
		return "", err
	}
	if _, err := c.store.TouchHistory(ctx, code, c.now()); err != nil {
		return "", fmt.Errorf("record history: %w", err)
	}
	return pw, nil
}

func (c *BunClient) ListHistory(ctx context.Context) ([]HistoryEntry, error) {
	items, err := c.store.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(items))
	for _, it := range items {
		out = append(out, HistoryEntry{Code: it.Code, LastUsed: it.Timestamp})
	}
	return out, nil
}

// DeleteHistory removes the given codes. Unknown codes are ignored.
func (c *BunClient) DeleteHistory(ctx context.Context, codes ...string) error {
	var errs []error
	for _, code := range codes {
		it, err := c.store.FindHistoryByCode(ctx, code)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if it == nil {
			continue
		}
		if err := c.store.DeleteHistory(ctx, it.ID); err != nil && !errors.Is(err, db.ErrNotFound) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *BunClient) ClearHistory(ctx context.Context) error {
	return c.store.ClearHistory(ctx)
}
