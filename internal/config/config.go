// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the application configuration with Viper and writes
// the default configuration file on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName    = "flowerpassword"
	configName = "flowerpassword"
	envPrefix  = "flowerpassword"
)

// Config is the full application configuration.
type Config struct {
	Database    Database    `mapstructure:"database" yaml:"database"`
	Language    string      `mapstructure:"language" yaml:"language"`
	History     History     `mapstructure:"history" yaml:"history"`
	SecretStore SecretStore `mapstructure:"secret_store" yaml:"secret_store"`
	Clipboard   Clipboard   `mapstructure:"clipboard" yaml:"clipboard"`
}

type Database struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

type History struct {
	// Debounce is how long input must stay unchanged before a code is saved.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

type SecretStore struct {
	// Backend selects where a remembered keyword lives: auto, db or keychain.
	Backend string `mapstructure:"backend" yaml:"backend"`
}

type Clipboard struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Defaults returns the built-in defaults keyed by their dotted config name.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":        "sqlite",
		"database.dsn":         "./flowerpassword.db",
		"language":             "en",
		"history.debounce":     "5s",
		"secret_store.backend": "auto",
		"clipboard.enabled":    true,
	}
}

// Default returns Defaults as a Config.
func Default() Config {
	return Config{
		Database:    Database{Type: "sqlite", Dsn: "./flowerpassword.db"},
		Language:    "en",
		History:     History{Debounce: 5 * time.Second},
		SecretStore: SecretStore{Backend: "auto"},
		Clipboard:   Clipboard{Enabled: true},
	}
}

// GetConfigPath returns the full path of the user or system configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "FlowerPassword")
		default:
			configDir = "/etc/" + appName
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, appName)
	}

	return filepath.Join(configDir, configName+".yaml"), nil
}

// LoadConfig layers defaults, the first config file found, FLOWERPASSWORD_*
// environment variables and the persistent flags of cmd's root, then decodes
// the result into T. Subcommand flags are command inputs, not configuration,
// and are never bound.
// A missing config file is reported as viper.ConfigFileNotFoundError next to
// a fully populated value so callers can decide to write one.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if isEmptyExplicitFile(configFile) {
		notFound = viper.ConfigFileNotFoundError{}
	} else if err := v.ReadInConfig(); err != nil {
		nf, ok := err.(viper.ConfigFileNotFoundError)
		if !ok {
			return c, err
		}
		notFound = nf
	}

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

// UsedConfigFile reports which file LoadConfig would read, or "" if none.
func UsedConfigFile(configFile *string) string {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}
	if p, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	if p, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// isEmptyExplicitFile treats a zero-length --config file like a missing one.
func isEmptyExplicitFile(configFile *string) bool {
	if configFile == nil || *configFile == "" {
		return false
	}
	fi, err := os.Stat(*configFile)
	return err == nil && fi.Size() == 0
}

// WriteConfigFile marshals c to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the DSN may carry database credentials.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}
