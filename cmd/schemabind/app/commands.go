// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the schemabind command-line application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schemabind/schemabind/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "schemabind",
	DisableAutoGenTag: true,
	Short:             "schemabind imports Kubernetes schemas and generates typed API bindings",
	Long: `schemabind ingests externally-authored schema documents (the Kubernetes core API,
Custom Resource Definitions, Helm chart value schemas) and resolves them into a
normalized, deterministic type model from which language-native API bindings
are generated.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Initialize()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates a new root command for the schemabind CLI.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		logger.Errorf("Error binding debug flag: %v", err)
	}

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
