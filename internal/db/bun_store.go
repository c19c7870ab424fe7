// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/toeirei/flowerpassword/internal/model"
	"github.com/uptrace/bun"
)

// HistoryModel maps the `history` table for Bun queries.
type HistoryModel struct {
	bun.BaseModel `bun:"table:history"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Code          string    `bun:"code"`
	LastUsed      time.Time `bun:"last_used"`
}

// SettingModel maps the `settings` table.
type SettingModel struct {
	bun.BaseModel `bun:"table:settings"`
	Name          string `bun:"name,pk"`
	Value         string `bun:"value"`
}

func historyModelToModel(h HistoryModel) model.HistoryItem {
	return model.HistoryItem{ID: h.ID, Code: h.Code, Timestamp: h.LastUsed}
}

// normalizeTime drops the monotonic clock and anything below the
// microsecond, which is the coarsest precision of the supported backends.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// BunStore implements Store for every supported backend.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

// DBType returns the backend name ("sqlite", "postgres" or "mysql").
func (s *BunStore) DBType() string { return s.dbType }

// Close closes the underlying connection pool.
func (s *BunStore) Close() error { return s.bun.Close() }

// BunDB exposes the Bun handle for maintenance tooling and tests.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

// SchemaVersions returns the applied migration versions in order.
func (s *BunStore) SchemaVersions(ctx context.Context) ([]string, error) {
	var versions []string
	if err := QueryRawInto(ctx, s.bun, &versions, "SELECT version FROM schema_migrations ORDER BY version"); err != nil {
		return nil, fmt.Errorf("failed to read schema versions: %w", err)
	}
	return versions, nil
}

// ListHistory returns all history items ordered by last use, newest first.
func (s *BunStore) ListHistory(ctx context.Context) ([]model.HistoryItem, error) {
	var rows []HistoryModel
	if err := s.bun.NewSelect().Model(&rows).Order("last_used DESC", "id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	items := make([]model.HistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, historyModelToModel(r))
	}
	return items, nil
}

// FindHistoryByCode returns the item with the exact code, or nil.
func (s *BunStore) FindHistoryByCode(ctx context.Context, code string) (*model.HistoryItem, error) {
	return findHistoryByCode(ctx, s.bun, code)
}

func findHistoryByCode(ctx context.Context, idb bun.IDB, code string) (*model.HistoryItem, error) {
	var row HistoryModel
	err := idb.NewSelect().Model(&row).Where("code = ?", code).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	item := historyModelToModel(row)
	return &item, nil
}

// TouchHistory records a use of code at the given time.
func (s *BunStore) TouchHistory(ctx context.Context, code string, at time.Time) (*model.HistoryItem, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("history code must not be blank")
	}
	var out model.HistoryItem
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		item, err := touchHistory(ctx, tx, code, normalizeTime(at), false)
		if err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, MapDBError(err)
	}
	dbLogf("db: touched history code (id=%d)", out.ID)
	return &out, nil
}

// touchHistory upserts code. With keepNewer set, an existing row is only
// updated when at is after its current timestamp.
func touchHistory(ctx context.Context, tx bun.Tx, code string, at time.Time, keepNewer bool) (model.HistoryItem, error) {
	existing, err := findHistoryByCode(ctx, tx, code)
	if err != nil {
		return model.HistoryItem{}, err
	}
	if existing != nil {
		if keepNewer && !at.After(existing.Timestamp) {
			return *existing, nil
		}
		row := HistoryModel{ID: existing.ID, Code: existing.Code, LastUsed: at}
		if _, err := tx.NewUpdate().Model(&row).Column("last_used").WherePK().Exec(ctx); err != nil {
			return model.HistoryItem{}, fmt.Errorf("failed to update history timestamp: %w", err)
		}
		return historyModelToModel(row), nil
	}
	row := HistoryModel{Code: code, LastUsed: at}
	if _, err := tx.NewInsert().Model(&row).Exec(ctx); err != nil {
		return model.HistoryItem{}, fmt.Errorf("failed to insert history item: %w", err)
	}
	return historyModelToModel(row), nil
}

// DeleteHistory removes the item with id. Unknown ids yield ErrNotFound.
func (s *BunStore) DeleteHistory(ctx context.Context, id int64) error {
	res, err := s.bun.NewDelete().Model((*HistoryModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearHistory removes every history item.
func (s *BunStore) ClearHistory(ctx context.Context) error {
	// Bun refuses DELETE without WHERE, hence the raw statement.
	_, err := ExecRaw(ctx, s.bun, "DELETE FROM history")
	return err
}

// ImportHistory merges items into the table inside one transaction.
func (s *BunStore) ImportHistory(ctx context.Context, items []model.HistoryItem, replace bool) error {
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if replace {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM history"); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
		}
		for _, it := range items {
			if strings.TrimSpace(it.Code) == "" {
				continue
			}
			if _, err := touchHistory(ctx, tx, it.Code, normalizeTime(it.Timestamp), true); err != nil {
				return err
			}
		}
		return nil
	})
	return MapDBError(err)
}

// GetSetting returns the value stored under name and whether it exists.
func (s *BunStore) GetSetting(ctx context.Context, name string) (string, bool, error) {
	var row SettingModel
	err := s.bun.NewSelect().Model(&row).Where("name = ?", name).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Value, true, nil
}

// SetSetting stores value under name, replacing any previous value.
func (s *BunStore) SetSetting(ctx context.Context, name, value string) error {
	return s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := SettingModel{Name: name, Value: value}
		exists, err := tx.NewSelect().Model((*SettingModel)(nil)).Where("name = ?", name).Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			_, err = tx.NewUpdate().Model(&row).Column("value").WherePK().Exec(ctx)
			return err
		}
		_, err = tx.NewInsert().Model(&row).Exec(ctx)
		return MapDBError(err)
	})
}

// DeleteSetting removes name. Deleting a missing setting is not an error.
func (s *BunStore) DeleteSetting(ctx context.Context, name string) error {
	_, err := s.bun.NewDelete().Model((*SettingModel)(nil)).Where("name = ?", name).Exec(ctx)
	return err
}
