// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/i18n"
	"github.com/toeirei/flowerpassword/internal/session"
)

// setupTestEnv isolates config discovery and opens a private in-memory
// sqlite database as the default store.
func setupTestEnv(t *testing.T) db.Store {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	unsetEnv(t, keywordEnv)
	t.Setenv("FLOWERPASSWORD_SECRET_STORE_BACKEND", "db")

	i18n.Init("en")

	dsn := fmt.Sprintf("file:cli_%d?mode=memory&cache=shared", time.Now().UnixNano())
	st, err := db.New("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseDefault() })
	return st
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// runCLI executes a fresh root command and returns stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_StartsTUIWithSession(t *testing.T) {
	setupTestEnv(t)

	prev := runTUI
	defer func() { runTUI = prev }()
	var got *session.Session
	runTUI = func(s *session.Session) error {
		got = s
		return nil
	}

	_, _, err := runCLI(t, "")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestSetup_WritesDefaultConfig(t *testing.T) {
	setupTestEnv(t)

	_, _, err := runCLI(t, "", "history", "list")
	require.NoError(t, err)

	_, err = os.Stat(os.Getenv("XDG_CONFIG_HOME") + "/flowerpassword/flowerpassword.yaml")
	assert.NoError(t, err)
	assert.Equal(t, "sqlite", appConfig.Database.Type)
	assert.Equal(t, 5*time.Second, appConfig.History.Debounce)
}

func TestSetup_MissingExplicitConfig(t *testing.T) {
	setupTestEnv(t)

	_, _, err := runCLI(t, "", "--config", "/nonexistent/fp.yaml", "history", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
}

func TestSetup_LanguageFlag(t *testing.T) {
	setupTestEnv(t)
	defer i18n.Init("en")

	out, _, err := runCLI(t, "", "--language", "de", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Der Verlauf ist leer.")
}

func TestDebugCmd_RedactsKeyword(t *testing.T) {
	setupTestEnv(t)
	t.Setenv(keywordEnv, "s3cret")

	out, _, err := runCLI(t, "", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "--- FLOWERPASSWORD DEBUG ---")
	assert.Contains(t, out, keywordEnv+"=<redacted>")
	assert.NotContains(t, out, "s3cret")
	assert.Contains(t, out, "Schema migrations: 0001_history, 0002_settings")
}

func TestDBMaintain(t *testing.T) {
	setupTestEnv(t)

	prev := runMaintenance
	defer func() { runMaintenance = prev }()
	var gotType string
	runMaintenance = func(_ context.Context, dbType, _ string) error {
		gotType = dbType
		return nil
	}

	out, _, err := runCLI(t, "", "db", "maintain")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", gotType)
	assert.Contains(t, out, "Maintenance finished.")

	runMaintenance = func(context.Context, string, string) error { return assert.AnError }
	_, _, err = runCLI(t, "", "db", "maintain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Maintenance failed")
}

func TestNewSession_ZeroDebounceSavesImmediately(t *testing.T) {
	st := setupTestEnv(t)
	t.Setenv("FLOWERPASSWORD_HISTORY_DEBOUNCE", "0s")

	prev := runTUI
	defer func() { runTUI = prev }()
	runTUI = func(s *session.Session) error {
		ctx := context.Background()
		s.SetKeyword(ctx, "k")
		s.SetCode(ctx, "google")
		assert.Empty(t, s.PendingCode())
		return s.Close(ctx)
	}

	_, _, err := runCLI(t, "")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), appConfig.History.Debounce)

	it, err := st.FindHistoryByCode(context.Background(), "google")
	require.NoError(t, err)
	assert.NotNil(t, it)
}

func TestDBMaintain_RejectsMemoryDatabase(t *testing.T) {
	setupTestEnv(t)

	prev := runMaintenance
	defer func() { runMaintenance = prev }()
	called := false
	runMaintenance = func(context.Context, string, string) error {
		called = true
		return nil
	}

	_, _, err := runCLI(t, "", "--database.dsn", ":memory:", "db", "maintain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in-memory")
	assert.False(t, called)
}

func TestRoot_DatabaseTypeHelpListsBackends(t *testing.T) {
	f := NewRootCmd().PersistentFlags().Lookup("database.type")
	require.NotNil(t, f)
	assert.Contains(t, f.Usage, "sqlite, postgres, mysql")
}
