// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/flowerpassword/internal/backup"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/i18n"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-file]",
		Short: i18n.T("backup.short"),
		Long: `Writes the code history into a Zstandard-compressed JSON file.

'.zst' is appended to the output file name if missing. Without an argument
'flowerpassword-backup-YYYY-MM-DD.json.zst' is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := fmt.Sprintf("flowerpassword-backup-%s.json.zst", time.Now().Format("2006-01-02"))
			if len(args) == 1 {
				outputFile = args[0]
				if !strings.HasSuffix(outputFile, ".zst") {
					outputFile += ".zst"
				}
			}
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}

			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("backup.cli_starting", outputFile))
			data, err := backup.Export(cmd.Context(), st, time.Now())
			if err != nil {
				return errors.New(i18n.T("backup.cli_error_export", err))
			}

			f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
			if err != nil {
				return errors.New(i18n.T("backup.cli_error_write", err))
			}
			if err := backup.Write(data, f); err != nil {
				_ = f.Close()
				return errors.New(i18n.T("backup.cli_error_write", err))
			}
			if err := f.Close(); err != nil {
				return errors.New(i18n.T("backup.cli_error_write", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("backup.cli_success", len(data.History), outputFile))
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "restore <backup-file.zst>",
		Short: i18n.T("restore.short"),
		Long: `Imports the code history from a backup written by 'backup'.

By default entries are merged: unknown codes are added and known codes keep
the newer timestamp. --full wipes the existing history first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}

			fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("restore.cli_starting", inputFile))
			f, err := os.Open(inputFile)
			if err != nil {
				return errors.New(i18n.T("restore.cli_error_read", err))
			}
			defer func() { _ = f.Close() }()

			n, err := backup.Restore(cmd.Context(), st, f, full)
			if err != nil {
				var verr *backup.VersionError
				if errors.As(err, &verr) {
					return errors.New(i18n.T("restore.cli_error_version", verr.Version))
				}
				return errors.New(i18n.T("restore.cli_error_import", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("restore.cli_success", n))
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, i18n.T("restore.flag_full"))
	return cmd
}
