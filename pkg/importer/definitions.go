// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"sort"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// CoreAPIModuleName is the module under which core-API definitions are emitted.
const CoreAPIModuleName = "k8s"

// Definition carries everything the external emitter needs to synthesize one
// type per target language. Definitions are immutable once the merge phase
// completes.
type Definition struct {
	// FullName is the fully-qualified source name: the dotted name for
	// core-API types, the group/kind key for custom resources.
	FullName string

	// GVK addresses the resource type the Kubernetes way.
	GVK schema.GroupVersionKind

	// Name is the resolved, collision-free identifier.
	Name string

	// Schema is the sanitized structural schema, may be nil.
	Schema map[string]any

	// Custom distinguishes CRD-derived definitions from core-API ones.
	Custom bool

	// NamePrefix and NameSuffix record how Name was assembled.
	NamePrefix string
	NameSuffix string
}

// DefinitionSet is the engine's output contract: an ordered mapping from
// module name to definitions. Iteration order is lexicographic by module
// name so repeated runs on identical input are byte-identical.
type DefinitionSet struct {
	modules map[string][]Definition
}

func groupVersionKind(group, version, kind string) schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: group, Version: version, Kind: kind}
}

// NewDefinitionSet returns an empty definition set.
func NewDefinitionSet() *DefinitionSet {
	return &DefinitionSet{modules: make(map[string][]Definition)}
}

// Add appends a definition to the named module.
func (s *DefinitionSet) Add(module string, def Definition) {
	s.modules[module] = append(s.modules[module], def)
}

// AddAll appends every definition of the other set, preserving its
// per-module order.
func (s *DefinitionSet) AddAll(other *DefinitionSet) {
	for _, module := range other.Modules() {
		s.modules[module] = append(s.modules[module], other.modules[module]...)
	}
}

// Modules returns the module names in lexicographic order.
func (s *DefinitionSet) Modules() []string {
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the definitions of one module in insertion order.
func (s *DefinitionSet) Definitions(module string) []Definition {
	return s.modules[module]
}

// Len returns the total number of definitions across all modules.
func (s *DefinitionSet) Len() int {
	total := 0
	for _, defs := range s.modules {
		total += len(defs)
	}
	return total
}
