// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemabind/schemabind/pkg/config"
	"github.com/schemabind/schemabind/pkg/importer"
)

var importFlags struct {
	allowPrivateIPs bool
	caCertPath      string
}

var importCmd = &cobra.Command{
	Use:   "import [NAME:=]SPEC...",
	Short: "Import schemas and resolve them into a type model",
	Long: `Import one or more schema sources and resolve them into type definitions.

Each SPEC is one of:
  k8s[@<version>]                        the Kubernetes core API
  <provider>:<owner>/<repo>[@<version>]  a schema-registry alias
  helm:<repo-or-registry>/<chart>@<ver>  a Helm chart values schema
  <path-or-url>                          a CRD manifest document

Examples:
  schemabind import k8s@1.22.0
  schemabind import github:crossplane/crossplane@0.14.0
  schemabind import crd:=https://example.com/crds/manifest.yaml
  schemabind import helm:https://charts.bitnami.com/bitnami/redis@17.0.0`,
	Args: cobra.MinimumNArgs(1),
	RunE: importCmdFunc,
}

func init() {
	importCmd.Flags().BoolVar(&importFlags.allowPrivateIPs, "allow-private-ips", false,
		"Allow fetching schemas from private IP addresses")
	importCmd.Flags().StringVar(&importFlags.caCertPath, "ca-cert", "",
		"Path to a CA certificate bundle for TLS fetches")
}

func importCmdFunc(cmd *cobra.Command, args []string) error {
	specs, err := importer.ParseImportSpecs(args)
	if err != nil {
		return err
	}

	provider := config.NewDefaultProvider()
	appConfig, err := provider.LoadOrCreateConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	engineCfg := importer.EngineConfigFromAppConfig(appConfig)
	if importFlags.allowPrivateIPs {
		engineCfg.AllowPrivateSourceIP = true
	}
	if importFlags.caCertPath != "" {
		engineCfg.CACertificatePath = importFlags.caCertPath
	}

	engine, err := importer.NewEngine(engineCfg, importer.WithRecorder(provider))
	if err != nil {
		return err
	}

	set, err := engine.Run(cmd.Context(), specs)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d definitions in %d modules:\n", set.Len(), len(set.Modules()))
	for _, module := range set.Modules() {
		defs := set.Definitions(module)
		fmt.Printf("  %s (%d definitions)\n", module, len(defs))
		for _, def := range defs {
			fmt.Printf("    %s\n", def.Name)
		}
	}
	return nil
}
