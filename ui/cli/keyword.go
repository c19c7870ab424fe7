// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/i18n"
)

func newKeywordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyword",
		Short: i18n.T("keyword.short"),
	}

	forget := &cobra.Command{
		Use:   "forget",
		Short: i18n.T("keyword.forget_short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}
			p, err := newPrefs(st)
			if err != nil {
				return err
			}
			if err := p.ClearSavedKeyword(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("keyword.forgotten"))
			return nil
		},
	}

	remember := &cobra.Command{
		Use:       "remember <on|off>",
		Short:     i18n.T("keyword.remember_short"),
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch strings.ToLower(args[0]) {
			case "on", "true", "yes":
				on = true
			case "off", "false", "no":
			default:
				return fmt.Errorf("%s", i18n.T("keyword.invalid_toggle", args[0]))
			}
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}
			p, err := newPrefs(st)
			if err != nil {
				return err
			}
			if err := p.SetRememberKeyword(cmd.Context(), on); err != nil {
				return err
			}
			if on {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("keyword.remember_on"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("keyword.remember_off"))
			}
			return nil
		},
	}

	cmd.AddCommand(forget, remember)
	return cmd
}
