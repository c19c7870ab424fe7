// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/i18n"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: i18n.T("history.short"),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: i18n.T("history.list_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}
			items, err := st.ListHistory(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, i18n.T("history.empty"))
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%s\n", it.Code, it.Timestamp.Local().Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <code>",
		Short: i18n.T("history.delete_short"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}
			it, err := st.FindHistoryByCode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if it == nil {
				return fmt.Errorf("%s", i18n.T("history.not_found", args[0]))
			}
			if err := st.DeleteHistory(cmd.Context(), it.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("history.deleted", it.Code))
			return nil
		},
	}

	clr := &cobra.Command{
		Use:   "clear",
		Short: i18n.T("history.clear_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}
			if err := st.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("history.cleared"))
			return nil
		},
	}

	cmd.AddCommand(list, del, clr)
	return cmd
}
