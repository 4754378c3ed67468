// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DeepWork Timer Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the DeepWork Timer CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deepworktimer",
		Short: "DeepWork Timer - focus session tracking backend",
		Long: `DeepWork Timer is the backend for a focus session tracker:
account management with email verification and social login, cookie
sessions over Redis, and per-user goal, category, counter, and timer
preset palettes with singleton selection.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
