// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup exports and imports the code history as zstd-compressed
// JSON.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/model"
)

// ErrUnsupportedVersion is returned for backups written by a newer schema.
var ErrUnsupportedVersion = errors.New("unsupported backup schema version")

// VersionError carries the schema version of a rejected backup.
type VersionError struct {
	Version int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnsupportedVersion, e.Version)
}

func (e *VersionError) Is(target error) bool { return target == ErrUnsupportedVersion }

// Export collects the history into a BackupData.
func Export(ctx context.Context, st db.HistoryStore, now time.Time) (*model.BackupData, error) {
	items, err := st.ListHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		CreatedAt:     now.UTC(),
		History:       items,
	}, nil
}

// Write encodes data as indented JSON through a zstd encoder.
func Write(data *model.BackupData, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode backup: %w", err)
	}
	return zw.Close()
}

// Read decodes a backup produced by Write.
func Read(r io.Reader) (*model.BackupData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if data.SchemaVersion > model.BackupSchemaVersion {
		return nil, &VersionError{Version: data.SchemaVersion}
	}
	return &data, nil
}

// Restore reads a backup from r and imports it. With full set the existing
// history is replaced, otherwise entries are merged keeping the newer
// timestamp per code. It returns the number of items in the backup.
func Restore(ctx context.Context, st db.HistoryStore, r io.Reader, full bool) (int, error) {
	data, err := Read(r)
	if err != nil {
		return 0, err
	}
	if err := st.ImportHistory(ctx, data.History, full); err != nil {
		return 0, fmt.Errorf("import history: %w", err)
	}
	return len(data.History), nil
}
