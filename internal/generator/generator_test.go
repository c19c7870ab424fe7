// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package generator

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_BlankInputs(t *testing.T) {
	cases := []struct {
		name    string
		keyword string
		code    string
	}{
		{"empty keyword", "", "x"},
		{"empty code", "x", ""},
		{"both empty", "", ""},
		{"whitespace only", "   ", "   "},
		{"tabs and newlines", "\t\n", "google"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Generate(c.keyword, c.code)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, got)
			assert.False(t, Valid(c.keyword, c.code))
		})
	}
}

func TestGenerate_GoldenVectors(t *testing.T) {
	cases := []struct {
		keyword, code, want string
	}{
		{"testpassword", "google", "K444C59106441f8F"},
		{"myPassword", "google", "K4a4A1E96185336E"},
		{"myPassword", "facebook", "K3854a36118f9804"},
		{"password1", "google", "K26906081798fD28"},
		{"password2", "google", "K55FBEA9b6cf020C"},
		{"pass123", "site456", "d352d2067fC90Bcc"},
		{"a", "b", "D9E1462b62f10B78"},
		{"花密", "淘宝", "KD748614A1f1d7fF"},
		// surrounding whitespace is hashed, not stripped
		{" padded ", "x", "F4D0f9dBc63bD745"},
	}
	for _, c := range cases {
		got, err := Generate(c.keyword, c.code)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "keyword=%q code=%q", c.keyword, c.code)
	}
}

func TestDerive_Stages(t *testing.T) {
	st, err := Derive("testpassword", "google")
	require.NoError(t, err)

	assert.Equal(t, "f146d182a5042750b96277d1625e6c80", st.Seed)
	assert.Equal(t, "2444c59106441f8fd369b5b123b220c0", st.Source)
	assert.Equal(t, "9fa21ecd272056706cd1e7f1156f3472", st.Rule)
	assert.Equal(t, "2444C59106441f8Fd369B5b123b220C0", st.Masked)
	assert.Equal(t, "K444C59106441f8F", st.Password)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate("myPassword", "google")
	require.NoError(t, err)
	b, err := Generate("myPassword", "google")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_Sensitivity(t *testing.T) {
	g1, _ := Generate("myPassword", "google")
	g2, _ := Generate("myPassword", "facebook")
	assert.NotEqual(t, g1, g2, "different codes should produce different passwords")

	k1, _ := Generate("password1", "google")
	k2, _ := Generate("password2", "google")
	assert.NotEqual(t, k1, k2, "different keywords should produce different passwords")
}

func TestGenerate_LengthAndLeadingCharacter(t *testing.T) {
	pairs := [][2]string{
		{"test", "google"},
		{"hello", "world"},
		{"pass123", "site456"},
		{"a", "b"},
		{"correct horse", "battery staple"},
	}
	for i := 0; i < 200; i++ {
		pairs = append(pairs, [2]string{"kw" + strings.Repeat("x", i%7), "code-" + string(rune('a'+i%26)) + strings.Repeat("1", i)})
	}
	for _, p := range pairs {
		got, err := Generate(p[0], p[1])
		require.NoError(t, err)
		require.Len(t, got, Length)
		assert.False(t, isDigit(got[0]), "leading digit for %q/%q: %s", p[0], p[1], got)
	}
}

func TestDerive_CasingConfinedToHexLetters(t *testing.T) {
	for _, p := range [][2]string{{"testpassword", "google"}, {"hello", "world"}, {"花密", "淘宝"}, {"a", "b"}} {
		st, err := Derive(p[0], p[1])
		require.NoError(t, err)
		require.Len(t, st.Source, 32)
		require.Len(t, st.Rule, 32)
		require.Len(t, st.Masked, 32)

		for i := 0; i < 32; i++ {
			src, out := st.Source[i], st.Masked[i]
			assert.Contains(t, "0123456789abcdef", string(src))
			assert.Contains(t, "0123456789abcdefABCDEF", string(out))
			if isDigit(src) {
				assert.Equal(t, src, out, "digit at %d altered", i)
				continue
			}
			wantUpper := strings.IndexByte(upperAlphabet, st.Rule[i]) >= 0
			assert.Equal(t, wantUpper, out != src, "position %d rule %q", i, st.Rule[i])
		}
	}
}

func TestTruncate_ForcesLeadingK(t *testing.T) {
	assert.Equal(t, "Kbcdef0123456789", truncate("0bcdef0123456789abcdef0123456789"))
	assert.Equal(t, "abcdef0123456789", truncate("abcdef0123456789abcdef0123456789"))
}

func TestGenerate_Concurrent(t *testing.T) {
	want, err := Generate("myPassword", "google")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Generate("myPassword", "google")
			if err == nil && got != want {
				err = errors.New("mismatch: " + got)
			}
			if err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
