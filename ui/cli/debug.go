// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/toeirei/flowerpassword/internal/config"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/i18n"
)

type schemaVersioner interface {
	SchemaVersions(ctx context.Context) ([]string, error)
}

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: i18n.T("debug.short"),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "--- FLOWERPASSWORD DEBUG ---")

			configPath, _ := getConfigPathFromCli(cmd)
			fmt.Fprintf(out, "Config file used: %s\n", config.UsedConfigFile(configPath))
			if p, err := config.GetConfigPath(false); err == nil {
				fmt.Fprintf(out, "User config path: %s\n", p)
			}
			if p, err := config.GetConfigPath(true); err == nil {
				fmt.Fprintf(out, "System config path: %s\n", p)
			}

			redacted := appConfig
			if redacted.Database.Dsn != "" && redacted.Database.Type != "sqlite" {
				redacted.Database.Dsn = "<redacted>"
			}
			b, err := json.MarshalIndent(redacted, "", "  ")
			if err != nil {
				return fmt.Errorf("could not marshal config: %w", err)
			}
			fmt.Fprintln(out, "-- effective config --")
			fmt.Fprintln(out, string(b))

			fmt.Fprintln(out, "-- flags --")
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				fmt.Fprintf(out, "%s = %s\n", f.Name, f.Value.String())
			})

			fmt.Fprintln(out, "-- environment (FLOWERPASSWORD_*) --")
			for _, e := range os.Environ() {
				if !strings.HasPrefix(e, "FLOWERPASSWORD_") {
					continue
				}
				if strings.HasPrefix(e, keywordEnv+"=") {
					e = keywordEnv + "=<redacted>"
				}
				fmt.Fprintln(out, e)
			}

			if vs, ok := db.DefaultStore().(schemaVersioner); ok {
				if versions, err := vs.SchemaVersions(cmd.Context()); err == nil {
					fmt.Fprintf(out, "Schema migrations: %s\n", strings.Join(versions, ", "))
				}
			}

			fmt.Fprintf(out, "Language: %s\n", i18n.GetLang())
			fmt.Fprintln(out, "--- END DEBUG ---")
			return nil
		},
	}
}
