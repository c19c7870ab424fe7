// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/i18n"
)

// runMaintenance is swapped out by tests.
var runMaintenance = db.RunDBMaintenance

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: i18n.T("db.short"),
	}

	var timeout time.Duration
	maintain := &cobra.Command{
		Use:   "maintain",
		Short: i18n.T("maintain.short"),
		Long:  `Runs engine-specific maintenance tasks (PRAGMA optimize/VACUUM, VACUUM ANALYZE, OPTIMIZE TABLE).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if db.IsMemoryDSN(appConfig.Database.Type, appConfig.Database.Dsn) {
				return errors.New(i18n.T("maintain.cli_memory"))
			}
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("maintain.cli_starting", appConfig.Database.Type))
			if err := runMaintenance(ctx, appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
				return errors.New(i18n.T("maintain.cli_error", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("maintain.cli_success"))
			return nil
		},
	}
	maintain.Flags().DurationVar(&timeout, "timeout", 0, "abort maintenance after this long (0 means no limit)")

	cmd.AddCommand(maintain)
	return cmd
}
