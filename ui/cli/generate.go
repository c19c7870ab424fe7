// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/toeirei/flowerpassword/internal/db"
	"github.com/toeirei/flowerpassword/internal/generator"
	"github.com/toeirei/flowerpassword/internal/i18n"
	"github.com/toeirei/flowerpassword/internal/logging"
	"github.com/toeirei/flowerpassword/internal/prefs"
	"github.com/toeirei/flowerpassword/internal/session"
	"golang.org/x/term"
)

// keywordEnv supplies the keyword for scripted use.
const keywordEnv = "FLOWERPASSWORD_KEYWORD"

// keywordSource records where the keyword came from.
type keywordSource int

const (
	sourceFlag keywordSource = iota
	sourceEnv
	sourceSaved
	sourcePrompt
)

// isTerminal is swapped out by tests.
var isTerminal = func(fd int) bool { return term.IsTerminal(fd) }

// clipboardOverride replaces the system clipboard in tests.
var clipboardOverride session.Clipboard

func newGenerateCmd() *cobra.Command {
	var (
		keyword string
		copyOut bool
		save    bool
		show    bool
	)
	cmd := &cobra.Command{
		Use:   "generate <code>",
		Short: i18n.T("generate.short"),
		Long: `Derives the password for <code> from the keyword.

The keyword is taken from --keyword, then the FLOWERPASSWORD_KEYWORD
environment variable, then the remembered keyword. If none is available
it is read from the terminal without echo.`,
		Example: `  flowerpassword generate google
  FLOWERPASSWORD_KEYWORD=secret flowerpassword generate github --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			st := db.DefaultStore()
			if st == nil {
				return db.ErrNotInitialized
			}
			p, err := newPrefs(st)
			if err != nil {
				return err
			}

			kw, src, err := resolveKeyword(cmd, p, keyword)
			if err != nil {
				return err
			}

			pw, err := generator.Generate(kw, code)
			if err != nil {
				if errors.Is(err, generator.ErrInvalidInput) {
					return errors.New(i18n.T("generate.invalid_input"))
				}
				return err
			}

			if src == sourceFlag || src == sourcePrompt {
				if err := p.SetSavedKeyword(cmd.Context(), kw); err != nil {
					logging.Warnf("could not save keyword: %v", err)
				}
			}

			out := cmd.OutOrStdout()
			if copyOut {
				clip := clipboardOverride
				if clip == nil {
					clip = clipboardFor()
				}
				if clip == nil {
					return fmt.Errorf("clipboard not available")
				}
				if err := clip.WriteAll(pw); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("generate.copied"))
				if show {
					fmt.Fprintln(out, pw)
				}
			} else {
				fmt.Fprintln(out, pw)
			}

			if save {
				if _, err := st.TouchHistory(cmd.Context(), code, time.Now()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("generate.saved"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", i18n.T("generate.flag_keyword"))
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, i18n.T("generate.flag_copy"))
	cmd.Flags().BoolVarP(&save, "save", "s", false, i18n.T("generate.flag_save"))
	cmd.Flags().BoolVar(&show, "show", false, i18n.T("generate.flag_show"))
	return cmd
}

// resolveKeyword walks flag, environment, remembered keyword and finally an
// interactive prompt.
func resolveKeyword(cmd *cobra.Command, p *prefs.Manager, flagValue string) (string, keywordSource, error) {
	if cmd.Flags().Changed("keyword") {
		return flagValue, sourceFlag, nil
	}
	if v, ok := os.LookupEnv(keywordEnv); ok {
		return v, sourceEnv, nil
	}
	saved, err := p.SavedKeyword(cmd.Context())
	if err != nil {
		logging.Warnf("could not read saved keyword: %v", err)
	}
	if saved != "" {
		return saved, sourceSaved, nil
	}
	kw, err := promptKeyword(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
	return kw, sourcePrompt, err
}

// promptKeyword reads the keyword without echo when stdin is a terminal and
// falls back to reading one line otherwise.
func promptKeyword(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, i18n.T("generate.prompt_keyword"))
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read keyword: %w", err)
		}
		return string(b), nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read keyword: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
