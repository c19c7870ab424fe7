// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/flowerpassword/internal/model"
	"github.com/toeirei/flowerpassword/internal/testutil"
)

func TestExportWriteRestore(t *testing.T) {
	ctx := context.Background()
	src := testutil.NewFakeStore()
	base := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	for i, c := range []string{"github", "google", "bank"} {
		_, err := src.TouchHistory(ctx, c, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	data, err := Export(ctx, src, base)
	require.NoError(t, err)
	assert.Equal(t, model.BackupSchemaVersion, data.SchemaVersion)
	assert.Len(t, data.History, 3)

	var buf bytes.Buffer
	require.NoError(t, Write(data, &buf))

	dst := testutil.NewFakeStore()
	n, err := Restore(ctx, dst, bytes.NewReader(buf.Bytes()), false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	items, err := dst.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "bank", items[0].Code)
}

func TestRestore_FullReplaces(t *testing.T) {
	ctx := context.Background()
	dst := testutil.NewFakeStore()
	_, err := dst.TouchHistory(ctx, "old", time.Now())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		History:       []model.HistoryItem{{Code: "new", Timestamp: time.Now()}},
	}, &buf))

	_, err = Restore(ctx, dst, &buf, true)
	require.NoError(t, err)
	items, err := dst.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Code)
}

func TestRead_RejectsNewerSchema(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(zw).Encode(model.BackupData{SchemaVersion: model.BackupSchemaVersion + 1}))
	require.NoError(t, zw.Close())

	_, err = Read(&buf)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestRead_NotZstd(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("{\"history\":[]}")))
	require.Error(t, err)
}

func TestExport_StoreError(t *testing.T) {
	st := testutil.NewFakeStore()
	st.Err = assert.AnError
	_, err := Export(context.Background(), st, time.Now())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRead_VersionErrorCarriesVersion(t *testing.T) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(zw).Encode(model.BackupData{SchemaVersion: 7}))
	require.NoError(t, zw.Close())

	_, err = Restore(context.Background(), testutil.NewFakeStore(), &buf, false)
	var verr *VersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 7, verr.Version)
}
