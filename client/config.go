// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.
package client

type LogLevel int

const (
	Error LogLevel = iota + 1
	Warn
	Info
	Debug
)

type Config struct {
	LogLevel     LogLevel
	DatabaseType string
	DatabaseUri  string
}

// NewDefaultConfig returns a config backed by a private in-memory database.
func NewDefaultConfig() Config {
	return Config{
		LogLevel:     Info,
		DatabaseType: "sqlite",
		DatabaseUri:  ":memory:",
	}
}
