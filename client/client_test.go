// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *BunClient {
	t.Helper()
	c, err := NewBunClient(NewDefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestBunClient_Generate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	pw, err := c.Generate(ctx, "testpassword", "google")
	require.NoError(t, err)
	assert.Equal(t, "K444C59106441f8F", pw)

	_, err = c.Generate(ctx, "", "google")
	assert.ErrorIs(t, err, ErrInvalidInput)

	items, err := c.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "Generate must not record history")
}

func TestBunClient_GenerateAndRecord(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	t0 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return t0 }

	pw, err := c.GenerateAndRecord(ctx, "myPassword", "facebook")
	require.NoError(t, err)
	assert.Equal(t, "K3854a36118f9804", pw)

	c.now = func() time.Time { return t0.Add(time.Minute) }
	_, err = c.GenerateAndRecord(ctx, "myPassword", "google")
	require.NoError(t, err)

	_, err = c.GenerateAndRecord(ctx, "myPassword", " ")
	require.ErrorIs(t, err, ErrInvalidInput)

	items, err := c.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "google", items[0].Code)
	assert.True(t, items[1].LastUsed.Equal(t0))

	require.NoError(t, c.DeleteHistory(ctx, "google", "unknown"))
	items, err = c.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "facebook", items[0].Code)

	require.NoError(t, c.ClearHistory(ctx))
	items, err = c.ListHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNewBunClient_UnsupportedType(t *testing.T) {
	_, err := NewBunClient(Config{DatabaseType: "oracle", DatabaseUri: "x"})
	require.Error(t, err)
}
