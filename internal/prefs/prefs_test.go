package prefs

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/keychain"
)

func newTestManager(t *testing.T) (*Manager, db.Store) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	st, err := db.NewStoreFromDSN("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewManager(st, keychain.NewMemoryStore()), st
}

func TestRememberKeyword_DefaultsOn(t *testing.T) {
	m, _ := newTestManager(t)
	got, err := m.RememberKeyword(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestSavedKeyword_RoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	kw, err := m.SavedKeyword(ctx)
	require.NoError(t, err)
	assert.Empty(t, kw)

	require.NoError(t, m.SetSavedKeyword(ctx, "my memory secret"))
	kw, err = m.SavedKeyword(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my memory secret", kw)

	require.NoError(t, m.ClearSavedKeyword(ctx))
	kw, err = m.SavedKeyword(ctx)
	require.NoError(t, err)
	assert.Empty(t, kw)
}

func TestSetSavedKeyword_IgnoresBlank(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetSavedKeyword(ctx, "keep"))
	require.NoError(t, m.SetSavedKeyword(ctx, "   "))
	kw, err := m.SavedKeyword(ctx)
	require.NoError(t, err)
	assert.Equal(t, "keep", kw)
}

func TestSetRememberKeyword_OffForgetsAndBlocksSaving(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetSavedKeyword(ctx, "secret"))
	require.NoError(t, m.SetRememberKeyword(ctx, false))

	kw, err := m.SavedKeyword(ctx)
	require.NoError(t, err)
	assert.Empty(t, kw)

	require.NoError(t, m.SetSavedKeyword(ctx, "again"))
	require.NoError(t, m.SetRememberKeyword(ctx, true))
	kw, err = m.SavedKeyword(ctx)
	require.NoError(t, err)
	assert.Empty(t, kw, "keyword typed while remember was off must not have been stored")
}

func TestRememberKeyword_MalformedValueFallsBack(t *testing.T) {
	m, st := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, st.SetSetting(ctx, rememberKeywordKey, "sometimes"))

	got, err := m.RememberKeyword(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultRememberKeyword, got)
}

func TestSecretStoreFor(t *testing.T) {
	_, st := newTestManager(t)

	s, err := SecretStoreFor(BackendDB, st)
	require.NoError(t, err)
	assert.IsType(t, &keychain.SettingsStore{}, s)

	s, err = SecretStoreFor(BackendAuto, st)
	require.NoError(t, err)
	if runtime.GOOS != "darwin" {
		assert.IsType(t, &keychain.SettingsStore{}, s)
	}

	_, err = SecretStoreFor("vault", st)
	require.Error(t, err)

	if runtime.GOOS != "darwin" {
		_, err = SecretStoreFor(BackendKeychain, st)
		require.ErrorIs(t, err, keychain.ErrUnavailable)
	}
}
