// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	databaseURL   string
	migrationPath string
	verbose       bool
}

// NewRootCmd creates the root command for the portalctl CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "portalctl",
		Short: "CivicPortal operator tools",
		Long: `portalctl manages the CivicPortal database schema and bootstraps
administrator accounts. Settings fall back to DATABASE_URL and MIGRATION_PATH.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if opts.databaseURL == "" {
				opts.databaseURL = os.Getenv("DATABASE_URL")
			}
			if opts.migrationPath == "" {
				opts.migrationPath = os.Getenv("MIGRATION_PATH")
			}
			if opts.migrationPath == "" {
				opts.migrationPath = "./data/migrations"
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&opts.migrationPath, "migrations", "", "directory holding the SQL migrations")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(NewMigrateCmd(opts))
	cmd.AddCommand(NewCreateSuperuserCmd(opts))

	return cmd
}

// logger writes human-readable logs to the command's error stream.
func (opts *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{Level: level, NoColor: true}))
}

func (opts *globalOptions) requireDatabase() error {
	if opts.databaseURL == "" {
		return errors.New("database_url_required: pass --database-url or set DATABASE_URL")
	}
	return nil
}
