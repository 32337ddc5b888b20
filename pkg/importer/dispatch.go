// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/schemabind/schemabind/pkg/errors"
)

// coreAPIAlias is the reserved import token for the Kubernetes core API.
const coreAPIAlias = "k8s"

// registryAliasPattern matches <provider>:<owner>/<repo>[@maj[.min[.patch]]].
// URL locators never match: the path after the colon would have to start
// with "//".
var registryAliasPattern = regexp.MustCompile(
	`^([a-z][a-z0-9-]*):([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)(@\d+(?:\.\d+){0,2})?$`)

// matcher inspects an import spec and either claims it by returning an
// importer, or passes. Matchers are consulted in a fixed order which is part
// of the engine's contract.
type matcher func(spec ImportSpec, e *Engine) (Importer, bool, error)

func orderedMatchers() []matcher {
	return []matcher{
		matchCoreAPI,
		matchHelm,
		matchRegistryAlias,
		matchDocument,
	}
}

// Resolve dispatches an import specification to the importer that claims it.
func (e *Engine) Resolve(spec ImportSpec) (Importer, error) {
	for _, match := range orderedMatchers() {
		imp, ok, err := match(spec, e)
		if err != nil {
			return nil, err
		}
		if ok {
			return imp, nil
		}
	}
	return nil, errors.NewSourceResolutionError(
		fmt.Sprintf("unable to determine import type for %q", spec.Source), nil)
}

func matchCoreAPI(spec ImportSpec, e *Engine) (Importer, bool, error) {
	if spec.Source == coreAPIAlias {
		return &CoreAPIImporter{engine: e, version: e.cfg.DefaultCoreAPIVersion}, true, nil
	}
	if version, ok := strings.CutPrefix(spec.Source, coreAPIAlias+"@"); ok {
		if version == "" {
			return nil, false, errors.NewInvalidSpecError(
				fmt.Sprintf("import %q has an empty version", spec.Source), nil)
		}
		return &CoreAPIImporter{engine: e, version: version}, true, nil
	}
	return nil, false, nil
}

func matchHelm(spec ImportSpec, e *Engine) (Importer, bool, error) {
	if !strings.HasPrefix(spec.Source, helmSchemePrefix) {
		return nil, false, nil
	}
	locator, err := ParseHelmLocator(spec.Source)
	if err != nil {
		// The locator is malformed; failing here keeps the error ahead
		// of any network access.
		return nil, false, err
	}
	return &HelmImporter{engine: e, spec: spec, locator: locator}, true, nil
}

func matchRegistryAlias(spec ImportSpec, e *Engine) (Importer, bool, error) {
	m := registryAliasPattern.FindStringSubmatch(spec.Source)
	if m == nil {
		return nil, false, nil
	}
	provider, owner, repo, version := m[1], m[2], m[3], m[4]

	// Omitted version means the registry's unversioned "latest" reference.
	location := fmt.Sprintf("%s/%s.com/%s/%s", e.cfg.RegistryBaseURL, provider, owner, repo)
	if version != "" {
		location += "@v" + strings.TrimPrefix(version, "@")
	}
	return &CRDImporter{engine: e, spec: spec, location: location}, true, nil
}

func matchDocument(spec ImportSpec, e *Engine) (Importer, bool, error) {
	if strings.TrimSpace(spec.Source) == "" {
		return nil, false, nil
	}
	return &CRDImporter{engine: e, spec: spec, location: spec.Source}, true, nil
}

// CoreAPIImporter imports the upstream Kubernetes API definition document.
type CoreAPIImporter struct {
	engine  *Engine
	version string
}

// Version returns the core API version this importer targets.
func (i *CoreAPIImporter) Version() string {
	return i.version
}

// Import fetches the versioned core-API schema document, sanitizes it, and
// builds the classified definition set.
func (i *CoreAPIImporter) Import(ctx context.Context) (*DefinitionSet, error) {
	url := fmt.Sprintf(i.engine.cfg.CoreAPISchemaURL, i.version)
	data, err := i.engine.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf("failed to parse core API schema for version %s", i.version), err)
	}

	sanitized, err := Sanitize(doc)
	if err != nil {
		return nil, err
	}

	return BuildCoreAPI(sanitized.(map[string]any), i.engine.cfg.Naming)
}

// CRDImporter imports a single- or multi-document CRD manifest from a local
// path or URL.
type CRDImporter struct {
	engine   *Engine
	spec     ImportSpec
	location string
}

// Location returns the resolved document locator.
func (i *CRDImporter) Location() string {
	return i.location
}

// Import runs the CRD pipeline: fetch, parse, sanitize, validate against the
// meta-schema, build and merge models, resolve names.
func (i *CRDImporter) Import(ctx context.Context) (*DefinitionSet, error) {
	data, err := i.engine.fetcher.Fetch(ctx, i.location)
	if err != nil {
		return nil, err
	}

	docs, err := ParseDocuments(data)
	if err != nil {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf("failed to parse documents from %q", i.spec.Source), err)
	}

	sanitized := make([]any, 0, len(docs))
	for _, doc := range docs {
		clean, err := Sanitize(doc)
		if err != nil {
			return nil, err
		}
		sanitized = append(sanitized, clean)
	}

	crdDocs := CollectCRDs(sanitized)
	if len(crdDocs) == 0 {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf("no CustomResourceDefinition documents found in %q", i.spec.Source), nil)
	}

	if err := ValidateCRDs(crdDocs); err != nil {
		return nil, err
	}

	crds, err := BuildCRDs(crdDocs)
	if err != nil {
		return nil, err
	}

	return i.definitionsFor(crds), nil
}

func (i *CRDImporter) definitionsFor(crds []*CustomResourceDefinition) *DefinitionSet {
	naming := i.engine.cfg.Naming
	set := NewDefinitionSet()
	for _, crd := range crds {
		module := moduleName(i.spec.ModuleNamePrefix, crd.Group)
		for idx, version := range crd.Versions {
			name := naming.CustomName(crd.Kind, version.Name, idx == 0)
			suffix := ""
			if idx > 0 {
				suffix = titleCaseVersion(version.Name)
			}
			set.Add(module, Definition{
				FullName:   crd.Key(),
				GVK:        groupVersionKind(crd.Group, version.Name, crd.Kind),
				Name:       name,
				Schema:     version.Schema,
				Custom:     true,
				NamePrefix: i.spec.ModuleNamePrefix,
				NameSuffix: suffix,
			})
		}
	}
	return set
}
