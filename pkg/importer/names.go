// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"strings"
	"unicode"
)

// NamingConfig controls canonical identifier derivation. The defaults are
// explicit configuration rather than ambient constants so each one can be
// overridden and tested independently.
type NamingConfig struct {
	// CoreAPIPrefix is prepended to every core-API object name to keep
	// generated identifiers clear of language- and ecosystem-reserved
	// names (Service, Namespace, Node, ...).
	CoreAPIPrefix string

	// PrimaryVersion is the stable version whose names stay unsuffixed.
	PrimaryVersion string
}

// DefaultNamingConfig returns the naming defaults.
func DefaultNamingConfig() NamingConfig {
	return NamingConfig{
		CoreAPIPrefix:  "Kube",
		PrimaryVersion: "v1",
	}
}

// CoreName derives the identifier for a core-API object: the prefixed kind,
// suffixed with the title-cased version unless it is the primary version.
// Distinct versions of the same kind therefore never collide.
func (n NamingConfig) CoreName(kind, version string) string {
	name := n.CoreAPIPrefix + upperFirst(kind)
	if version != n.PrimaryVersion {
		name += titleCaseVersion(version)
	}
	return name
}

// CustomName derives the identifier for a CRD-backed object. The first
// version of a multi-version CRD keeps the bare kind for backward
// compatibility; every later version carries a title-cased version suffix.
func (n NamingConfig) CustomName(kind, version string, firstVersion bool) string {
	name := upperFirst(kind)
	if !firstVersion {
		name += titleCaseVersion(version)
	}
	return name
}

// titleCaseVersion turns a version token into an identifier suffix:
// "v1beta1" becomes "V1Beta1".
func titleCaseVersion(version string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range version {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
