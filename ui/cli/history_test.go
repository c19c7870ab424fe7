// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_ListDeleteClear(t *testing.T) {
	st := setupTestEnv(t)
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, c := range []string{"github", "google", "bank"} {
		_, err := st.TouchHistory(ctx, c, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	out, _, err := runCLI(t, "", "history", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "bank"))
	assert.True(t, strings.HasPrefix(lines[2], "github"))

	out, _, err = runCLI(t, "", "history", "delete", "google")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "google" from history.`)

	_, _, err = runCLI(t, "", "history", "delete", "google")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the history")

	out, _, err = runCLI(t, "", "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")

	out, _, err = runCLI(t, "", "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "History is empty.\n", out)
}
