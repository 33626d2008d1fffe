// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd returns the schema migration commands.
func MigrateCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the database schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(deps, func(migrator Migrator) error {
				if err := migrator.Up(); err != nil {
					return err
				}
				return printVersion(cmd, migrator)
			})
		},
	})

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			return withMigrator(deps, func(migrator Migrator) error {
				if err := migrator.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd, migrator)
			})
		},
	}
	down.Flags().Int("steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(deps, func(migrator Migrator) error {
				return printVersion(cmd, migrator)
			})
		},
	})

	return cmd
}

func withMigrator(deps Deps, run func(Migrator) error) error {
	migrator, err := deps.Migrator()
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer migrator.Close()
	return run(migrator)
}

func printVersion(cmd *cobra.Command, migrator Migrator) error {
	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}

	state := okColor.Sprint("clean")
	if dirty {
		state = warnColor.Sprint("dirty")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %s (%s)\n", keyColor.Sprint(version), state)
	return nil
}
