// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

// Package importer implements the schema import and type-model resolution
// engine: it dispatches import specifications to the correct schema source,
// sanitizes and validates the fetched documents, and produces a deterministic
// set of type definitions for the code emitter.
package importer

import (
	"fmt"
	"strings"

	"github.com/schemabind/schemabind/pkg/errors"
)

// moduleNameDelimiter separates an optional module-name prefix from the
// source in an import argument, e.g. "crd:=https://example.com/crd.yaml".
const moduleNameDelimiter = ":="

// ImportSpec is a parsed, immutable import specification.
type ImportSpec struct {
	// Original is the exact pre-dispatch string the user supplied. It is
	// what gets persisted to the import list on success.
	Original string

	// Source identifies where the schema comes from: the core-API alias,
	// a registry alias, a helm locator, or a document path/URL.
	Source string

	// ModuleNamePrefix optionally namespaces the emitted modules.
	ModuleNamePrefix string
}

// ParseImportSpec parses a single import argument of the form [NAME:=]SPEC.
func ParseImportSpec(arg string) (ImportSpec, error) {
	parts := strings.Split(arg, moduleNameDelimiter)
	switch len(parts) {
	case 1:
		return ImportSpec{Original: arg, Source: parts[0]}, nil
	case 2:
		return ImportSpec{Original: arg, ModuleNamePrefix: parts[0], Source: parts[1]}, nil
	default:
		return ImportSpec{}, errors.NewInvalidSpecError(
			fmt.Sprintf("invalid import %q: Syntax is [NAME:=]SPEC", arg), nil)
	}
}

// ParseImportSpecs parses a list of import arguments, preserving order.
// Later imports may depend on state written by earlier ones, so order is
// part of the contract.
func ParseImportSpecs(args []string) ([]ImportSpec, error) {
	specs := make([]ImportSpec, 0, len(args))
	for _, arg := range args {
		spec, err := ParseImportSpec(arg)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
