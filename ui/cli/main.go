// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/flowerpassword/buildvars"
	"github.com/toeirei/flowerpassword/internal/config"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/i18n"
	"github.com/toeirei/flowerpassword/internal/logging"
	"github.com/toeirei/flowerpassword/internal/prefs"
	"github.com/toeirei/flowerpassword/internal/session"
	"github.com/toeirei/flowerpassword/internal/tui"
)

const modulePath = "github.com/toeirei/flowerpassword"

var version = "dev"   // set by the linker
var gitCommit = "dev" // short commit SHA, set at build time
var buildDate = ""    // RFC3339, set at build time

// appConfig is the configuration loaded by setupDefaultServices.
var appConfig config.Config

// runTUI is swapped out by tests.
var runTUI = tui.Run

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), configPath)
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// First run: persist the defaults so the user has a file to edit.
		if path, writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Infof("%s", i18n.T("config.wrote_default", path))
		}
	} else if err != nil {
		return errors.New(i18n.T("config.error_load", err))
	}

	// Empty values in a user file fall back to the defaults.
	def := config.Default()
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = def.Database.Type
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = def.Database.Dsn
	}
	if appConfig.Language == "" {
		appConfig.Language = def.Language
	}
	if appConfig.SecretStore.Backend == "" {
		appConfig.SecretStore.Backend = def.SecretStore.Backend
	}

	i18n.Init(appConfig.Language)

	if !db.IsInitialized() {
		if _, err := db.New(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
	}
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// newPrefs builds the preference manager for the configured keyword backend.
func newPrefs(st db.Store) (*prefs.Manager, error) {
	secrets, err := prefs.SecretStoreFor(appConfig.SecretStore.Backend, st)
	if err != nil {
		return nil, err
	}
	return prefs.NewManager(st, secrets), nil
}

func clipboardFor() session.Clipboard {
	if !appConfig.Clipboard.Enabled || !session.ClipboardAvailable() {
		return nil
	}
	return session.SystemClipboard{}
}

// newSession wires the interactive session to the default store.
func newSession(ctx context.Context) (*session.Session, error) {
	st := db.DefaultStore()
	if st == nil {
		return nil, db.ErrNotInitialized
	}
	p, err := newPrefs(st)
	if err != nil {
		return nil, err
	}
	// Zero saves immediately; negative values fall back to the recorder default.
	return session.New(ctx, session.Deps{
		History:   st,
		Prefs:     p,
		Clipboard: clipboardFor(),
		Delay:     appConfig.History.Debounce,
	})
}

// Execute runs the CLI. cmd/flowerpassword calls it and handles the exit code.
func Execute() error {
	defer func() {
		if err := db.CloseDefault(); err != nil {
			logging.Errorf("closing database: %v", err)
		}
	}()
	return NewRootCmd().Execute()
}

// NewRootCmd creates a fresh root command with every subcommand attached.
// Tests call it once per case to avoid shared flag state.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "flowerpassword",
		Short:             i18n.T("app.short"),
		Long:              i18n.T("app.long") + "\n\nRunning without a subcommand starts the interactive TUI.",
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			return runTUI(sess)
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output (includes DB logs)")
	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("language", "", `UI language ("en", "de")`)
	cmd.PersistentFlags().String("database.type", "", fmt.Sprintf("Database type (%s)", strings.Join(db.SupportedTypes, ", ")))
	cmd.PersistentFlags().String("database.dsn", "", "Database connection string (DSN)")

	cmd.AddCommand(
		newGenerateCmd(),
		newHistoryCmd(),
		newKeywordCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newDBCmd(),
		newDebugCmd(),
		newVersionCmd(),
	)
	return cmd
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("version.short"),
		// No config or database needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date. A nil info reads the runtime build info.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	if buildvars.Commit != "" {
		resolvedCommit = buildvars.Commit
	}
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}
	return resolvedVersion, strings.TrimSpace(resolvedCommit), resolvedDate
}
