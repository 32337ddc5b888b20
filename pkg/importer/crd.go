// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/schemabind/schemabind/pkg/errors"
)

// acceptedAPIVersions are the API-extension versions a CRD document may carry.
var acceptedAPIVersions = []string{
	"apiextensions.k8s.io/v1beta1",
	"apiextensions.k8s.io/v1",
}

// CRDVersion is one API version of a custom resource, with its optional
// structural schema.
type CRDVersion struct {
	Name   string
	Schema map[string]any
}

// CustomResourceDefinition is the logical record for one (group, kind) pair,
// possibly merged from several documents carrying different versions.
type CustomResourceDefinition struct {
	Group    string
	Kind     string
	Versions []CRDVersion
}

// Key identifies a CRD for merging: group plus lowercased kind.
func (c *CustomResourceDefinition) Key() string {
	return fmt.Sprintf("%s/%s", c.Group, strings.ToLower(c.Kind))
}

func (c *CustomResourceDefinition) appendVersion(v CRDVersion) error {
	for _, existing := range c.Versions {
		if existing.Name == v.Name {
			return errors.NewAmbiguousMergeError(
				fmt.Sprintf("found multiple occurrences of version %q in CRD %q", v.Name, c.Key()), nil)
		}
	}
	c.Versions = append(c.Versions, v)
	return nil
}

// Merge appends the other CRD's versions. A version name present on both
// sides is a fatal conflict.
func (c *CustomResourceDefinition) Merge(other *CustomResourceDefinition) error {
	for _, v := range other.Versions {
		if err := c.appendVersion(v); err != nil {
			return err
		}
	}
	return nil
}

// NewCustomResourceDefinition builds one CRD record from a sanitized,
// validated document.
func NewCustomResourceDefinition(doc map[string]any) (*CustomResourceDefinition, error) {
	apiVersion := stringField(doc, "apiVersion")
	if !isAcceptedAPIVersion(apiVersion) {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf("unsupported apiVersion %q: accepted values are %s",
				apiVersion, strings.Join(acceptedAPIVersions, ", ")), nil)
	}

	if kind := kindOf(doc); kind != crdKind {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf("unexpected kind %q: expected %q", kind, crdKind), nil)
	}

	spec := mapField(doc, "spec")
	if spec == nil {
		return nil, errors.NewMalformedDocumentError(
			`CRD manifest does not have a "spec" field`, nil)
	}

	group := stringField(spec, "group")
	if group == "" {
		return nil, errors.NewMalformedDocumentError(
			`CRD spec does not declare a "group"`, nil)
	}

	kind := stringField(mapField(spec, "names"), "kind")
	if kind == "" {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf(`CRD for group %q does not declare "names.kind"`, group), nil)
	}

	crd := &CustomResourceDefinition{Group: group, Kind: kind}

	// The singular validation schema doubles as the fallback for version
	// entries that omit their own schema (legacy v1beta1 shape).
	fallbackSchema := mapField(mapField(spec, "validation"), "openAPIV3Schema")

	if versions, ok := spec["versions"].([]any); ok {
		for _, entry := range versions {
			version, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			name := stringField(version, "name")
			if name == "" {
				continue
			}
			schema := mapField(mapField(version, "schema"), "openAPIV3Schema")
			if schema == nil {
				schema = fallbackSchema
			}
			if err := crd.appendVersion(CRDVersion{Name: name, Schema: schema}); err != nil {
				return nil, err
			}
		}
	} else if name := stringField(spec, "version"); name != "" {
		if err := crd.appendVersion(CRDVersion{Name: name, Schema: fallbackSchema}); err != nil {
			return nil, err
		}
	}

	if len(crd.Versions) == 0 {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf("unable to determine versions for CRD %q", crd.Key()), nil)
	}

	return crd, nil
}

// BuildCRDs turns validated, sanitized documents into one logical CRD per
// (group, kind) key, merging version lists across documents. The result is
// sorted by key so repeated runs produce identical output.
func BuildCRDs(docs []map[string]any) ([]*CustomResourceDefinition, error) {
	byKey := make(map[string]*CustomResourceDefinition)
	for _, doc := range docs {
		crd, err := NewCustomResourceDefinition(doc)
		if err != nil {
			return nil, err
		}

		if existing, ok := byKey[crd.Key()]; ok {
			if err := existing.Merge(crd); err != nil {
				return nil, err
			}
			continue
		}
		byKey[crd.Key()] = crd
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	crds := make([]*CustomResourceDefinition, 0, len(keys))
	for _, key := range keys {
		crds = append(crds, byKey[key])
	}
	return crds, nil
}

func isAcceptedAPIVersion(apiVersion string) bool {
	for _, accepted := range acceptedAPIVersions {
		if apiVersion == accepted {
			return true
		}
	}
	return false
}
