// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepworktimer/deepworktimer/internal/config"
	"github.com/deepworktimer/deepworktimer/internal/store"
)

// NewMigrateCmd creates the migrate subcommand tree.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long:  `Apply, roll back, and inspect schema migrations against the PostgreSQL database.`,
	}

	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateDownCmd())
	cmd.AddCommand(newMigrateStatusCmd())

	return cmd
}

// openMigrator builds a migrator from the loaded configuration.
func openMigrator() (*store.Migrator, error) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return nil, err
	}
	return store.NewMigrator(cfg.Database.URL)
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, err := openMigrator()
			if err != nil {
				return err
			}
			defer func() { _ = migrator.Close() }()

			cmd.Println("Applying migrations...")
			if err := migrator.Up(); err != nil {
				return err
			}
			cmd.Println("Migrations applied")
			return nil
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, err := openMigrator()
			if err != nil {
				return err
			}
			defer func() { _ = migrator.Close() }()

			if all {
				cmd.Println("Rolling back all migrations...")
				if err := migrator.Down(); err != nil {
					return err
				}
			} else {
				cmd.Println("Rolling back one migration...")
				if err := migrator.Steps(-1); err != nil {
					return err
				}
			}
			cmd.Println("Rollback complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "roll back every applied migration")

	return cmd
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current and pending migration versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, err := openMigrator()
			if err != nil {
				return err
			}
			defer func() { _ = migrator.Close() }()

			output, err := formatMigrateStatus(migrator)
			if err != nil {
				return err
			}
			cmd.Println(output)
			return nil
		},
	}
}

// migrateStatusSource is the slice of the migrator the status output needs.
type migrateStatusSource interface {
	Version() (version uint, dirty bool, err error)
	PendingMigrations() ([]uint, error)
}

func formatMigrateStatus(m migrateStatusSource) (string, error) {
	version, dirty, err := m.Version()
	if err != nil {
		return "", err
	}
	pending, err := m.PendingMigrations()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if version == 0 {
		b.WriteString("version: none\n")
	} else {
		name, err := store.MigrationName(version)
		if err != nil {
			name = "unknown"
		}
		fmt.Fprintf(&b, "version: %d (%s)\n", version, name)
	}
	fmt.Fprintf(&b, "dirty:   %t\n", dirty)

	if len(pending) == 0 {
		b.WriteString("pending: none")
	} else {
		names := make([]string, 0, len(pending))
		for _, v := range pending {
			name, err := store.MigrationName(v)
			if err != nil {
				name = fmt.Sprintf("%d", v)
			}
			names = append(names, name)
		}
		fmt.Fprintf(&b, "pending: %s", strings.Join(names, ", "))
	}

	return b.String(), nil
}
