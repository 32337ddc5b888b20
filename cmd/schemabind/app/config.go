// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemabind/schemabind/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration",
	Long:  "The config command provides subcommands to manage application configuration settings.",
}

var listImportsCmd = &cobra.Command{
	Use:   "list-imports",
	Short: "List the persisted import specifications",
	Long:  "Display every import specification that has been successfully processed and persisted.",
	RunE:  listImportsCmdFunc,
}

var setRegistryCmd = &cobra.Command{
	Use:   "set-registry <url>",
	Short: "Set the base URL used to resolve schema-registry aliases",
	Args:  cobra.ExactArgs(1),
	RunE:  setRegistryCmdFunc,
}

var unsetRegistryCmd = &cobra.Command{
	Use:   "unset-registry",
	Short: "Reset the schema-registry base URL to the default",
	RunE:  unsetRegistryCmdFunc,
}

func init() {
	configCmd.AddCommand(listImportsCmd)
	configCmd.AddCommand(setRegistryCmd)
	configCmd.AddCommand(unsetRegistryCmd)
}

func listImportsCmdFunc(_ *cobra.Command, _ []string) error {
	imports, err := config.NewDefaultProvider().ListImports()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(imports) == 0 {
		fmt.Println("No imports recorded.")
		return nil
	}
	for _, spec := range imports {
		fmt.Println(spec)
	}
	return nil
}

func setRegistryCmdFunc(_ *cobra.Command, args []string) error {
	err := config.NewDefaultProvider().UpdateConfig(func(c *config.Config) {
		c.RegistryBaseURL = args[0]
	})
	if err != nil {
		return fmt.Errorf("failed to update configuration: %w", err)
	}
	fmt.Printf("Registry base URL set to %s\n", args[0])
	return nil
}

func unsetRegistryCmdFunc(_ *cobra.Command, _ []string) error {
	err := config.NewDefaultProvider().UpdateConfig(func(c *config.Config) {
		c.RegistryBaseURL = config.DefaultRegistryBaseURL
	})
	if err != nil {
		return fmt.Errorf("failed to update configuration: %w", err)
	}
	fmt.Println("Registry base URL reset to default.")
	return nil
}
