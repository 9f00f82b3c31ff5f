// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the histkeeper command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-hist-keeper/internal/app"
	"github.com/MKhiriev/go-hist-keeper/internal/config"
	"github.com/MKhiriev/go-hist-keeper/internal/logger"
	"github.com/MKhiriev/go-hist-keeper/models"
)

// runner carries state shared by the subcommands of one invocation.
type runner struct {
	info models.AppBuildInfo
	cfg  *config.StructuredConfig
	log  *logger.Logger
}

// NewRootCommand builds the histkeeper command tree. Configuration flags are
// registered as persistent flags on the root.
func NewRootCommand(info models.AppBuildInfo) *cobra.Command {
	r := &runner{info: info}

	root := &cobra.Command{
		Use:   "histkeeper",
		Short: "Keep shell history encrypted at rest",
		Long: `histkeeper seals shell history entries with a per-installation key
(XSalsa20-Poly1305) and stores only ciphertext in a local SQLite database.

The key lives in a single file that is created on first use and never
overwritten. Losing it makes every stored entry unreadable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		r.newKeyCommand(),
		r.newSealCommand(),
		r.newOpenCommand(),
		r.newDeleteCommand(),
		r.newCountCommand(),
		r.newVersionCommand(),
	)
	return root
}

// Execute runs root and reports a failure on its error stream. It returns
// the process exit code.
func Execute(ctx context.Context, root *cobra.Command) int {
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.RedString("error:"), err)
	if msg := app.UserMessage(err); msg != app.MsgInternalError {
		fmt.Fprintf(w, "%s %s\n", color.YellowString("hint:"), msg)
	}
}

func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.YellowString("warning:"), fmt.Sprintf(format, args...))
}

// setup loads configuration and the logger, and attaches the logger to the
// command context.
func (r *runner) setup(cmd *cobra.Command) (context.Context, error) {
	cfg, err := config.GetStructuredConfig(cmd.Root().PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	newLogger := logger.NewCLILogger
	if cfg.Log.Format == config.LogFormatJSON {
		newLogger = logger.NewLogger
	}
	log, err := newLogger("cli", cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	r.cfg, r.log = cfg, log

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmdLog := log.GetChildLogger()
	cmdLog.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("command", cmd.CommandPath())
	})
	ctx = cmdLog.WithContext(ctx)
	cmd.SetContext(ctx)
	return ctx, nil
}

// withApp runs fn against a fully wired App and closes it afterwards.
func (r *runner) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) (err error) {
	ctx, err := r.setup(cmd)
	if err != nil {
		return err
	}

	a, err := app.NewApp(ctx, r.cfg, r.log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(ctx, a)
}
