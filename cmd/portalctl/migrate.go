// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/civicportal/internal/platform/migration"
)

// NewMigrateCmd creates the migrate command group.
func NewMigrateCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect and apply database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(cmd, opts, func(runner *migration.Runner) error {
				return runner.Up()
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps <= 0 {
				return fmt.Errorf("invalid_steps: --steps must be positive, got %d", steps)
			}
			return withRunner(cmd, opts, func(runner *migration.Runner) error {
				return runner.Down(steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(cmd, opts, func(runner *migration.Runner) error {
				version, dirty, err := runner.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version %d", version)
				if dirty {
					cmd.Print(" (dirty)")
				}
				cmd.Println()
				return nil
			})
		},
	})

	return cmd
}

func withRunner(cmd *cobra.Command, opts *globalOptions, run func(*migration.Runner) error) error {
	if err := opts.requireDatabase(); err != nil {
		return err
	}

	runner, err := migration.Open(opts.databaseURL, opts.migrationPath, opts.logger(cmd))
	if err != nil {
		return err
	}
	defer runner.Close()

	return run(runner)
}
