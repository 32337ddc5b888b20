// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemabind/schemabind/pkg/errors"
	"github.com/schemabind/schemabind/pkg/importer"
)

func validCRDDoc(group, kind string) map[string]any {
	return map[string]any{
		"apiVersion": "apiextensions.k8s.io/v1",
		"kind":       "CustomResourceDefinition",
		"spec": map[string]any{
			"group": group,
			"names": map[string]any{"kind": kind},
			"versions": []any{
				map[string]any{
					"name": "v1",
					"schema": map[string]any{
						"openAPIV3Schema": map[string]any{"type": "object"},
					},
				},
			},
		},
	}
}

func TestValidateCRDsAcceptsWellFormedDocument(t *testing.T) {
	t.Parallel()
	err := importer.ValidateCRDs([]map[string]any{validCRDDoc("example.com", "Widget")})
	require.NoError(t, err)
}

func TestValidateCRDsRejectsWrongAPIVersion(t *testing.T) {
	t.Parallel()
	doc := validCRDDoc("example.com", "Widget")
	doc["apiVersion"] = "apps/v1"

	err := importer.ValidateCRDs([]map[string]any{doc})
	require.Error(t, err)
	assert.True(t, errors.IsSchemaValidation(err))
}

func TestValidateCRDsAggregatesAcrossDocuments(t *testing.T) {
	t.Parallel()
	wrongAPIVersion := validCRDDoc("example.com", "Widget")
	wrongAPIVersion["apiVersion"] = "v1"

	missingVersions := validCRDDoc("other.io", "Gadget")
	delete(missingVersions["spec"].(map[string]any), "versions")

	err := importer.ValidateCRDs([]map[string]any{wrongAPIVersion, missingVersions})
	require.Error(t, err)
	assert.True(t, errors.IsSchemaValidation(err))
	// Both documents are reported in the one aggregated failure.
	assert.Contains(t, err.Error(), "Widget")
	assert.Contains(t, err.Error(), "Gadget")
}

func TestValidateCRDsRequiresVersionOrVersions(t *testing.T) {
	t.Parallel()
	legacy := map[string]any{
		"apiVersion": "apiextensions.k8s.io/v1beta1",
		"kind":       "CustomResourceDefinition",
		"spec": map[string]any{
			"group":   "legacy.io",
			"names":   map[string]any{"kind": "Relic"},
			"version": "v1alpha1",
			"validation": map[string]any{
				"openAPIV3Schema": map[string]any{"type": "object"},
			},
		},
	}
	require.NoError(t, importer.ValidateCRDs([]map[string]any{legacy}))

	delete(legacy["spec"].(map[string]any), "version")
	require.Error(t, importer.ValidateCRDs([]map[string]any{legacy}))
}
