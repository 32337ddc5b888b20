// Package main is the entry point for the schemabind CLI.
package main

import (
	"os"

	"github.com/schemabind/schemabind/cmd/schemabind/app"
	"github.com/schemabind/schemabind/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
