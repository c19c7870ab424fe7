// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package generator derives reproducible 16-character passwords from a
// memory keyword and a per-service code.
//
// The derivation is a pure function. It chains three HMAC-MD5 computations
// and applies a casing mask, so the same (keyword, code) pair always yields
// the same password and nothing besides the inputs needs to be stored.
//
// The three constants below act as domain separators. Changing any of them
// changes every password ever derived, so they are not configurable.
package generator // import "github.com/toeirei/flowerpassword/internal/generator"

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	sourceSeparator = "snow"
	ruleSeparator   = "kise"
	upperAlphabet   = "sunlovesnow1990090127xykab"
)

// Length is the number of characters in a derived password.
const Length = 16

// ErrInvalidInput is returned when the keyword or the code is blank.
// Interactive callers hit this constantly (a keyword without a code yet)
// and should render it as an empty password, not as a failure.
var ErrInvalidInput = errors.New("keyword and code must not be blank")

// Stages exposes the intermediate values of a derivation.
type Stages struct {
	Seed     string // hex HMAC-MD5(code, keyword)
	Source   string // hex HMAC-MD5("snow", Seed), the character content
	Rule     string // hex HMAC-MD5("kise", Seed), the casing mask
	Masked   string // Source after the casing pass, 32 characters
	Password string
}

// Valid reports whether keyword and code are both non-blank.
func Valid(keyword, code string) bool {
	return strings.TrimSpace(keyword) != "" && strings.TrimSpace(code) != ""
}

// Generate returns the password for keyword and code, or ErrInvalidInput.
// The inputs are hashed as given; trimming only decides blankness.
func Generate(keyword, code string) (string, error) {
	st, err := Derive(keyword, code)
	if err != nil {
		return "", err
	}
	return st.Password, nil
}

// Derive runs the full derivation and returns every intermediate stage.
func Derive(keyword, code string) (Stages, error) {
	if !Valid(keyword, code) {
		return Stages{}, ErrInvalidInput
	}

	seed := hmacMD5Hex(code, keyword)
	source := hmacMD5Hex(sourceSeparator, seed)
	rule := hmacMD5Hex(ruleSeparator, seed)
	masked := applyMask(source, rule)

	return Stages{
		Seed:     seed,
		Source:   source,
		Rule:     rule,
		Masked:   masked,
		Password: truncate(masked),
	}, nil
}

// applyMask builds a new string from source, uppercasing each non-digit
// whose rule character appears in upperAlphabet.
func applyMask(source, rule string) string {
	out := make([]byte, len(source))
	for i := 0; i < len(source); i++ {
		out[i] = maskByte(source[i], rule[i])
	}
	return string(out)
}

func maskByte(c, r byte) byte {
	if isDigit(c) || strings.IndexByte(upperAlphabet, r) < 0 {
		return c
	}
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// truncate keeps the first Length characters and forces a leading 'K'
// when the password would otherwise start with a digit.
func truncate(masked string) string {
	if isDigit(masked[0]) {
		return "K" + masked[1:Length]
	}
	return masked[:Length]
}

func hmacMD5Hex(key, message string) string {
	mac := hmac.New(md5.New, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
