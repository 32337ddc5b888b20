// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemabind/schemabind/pkg/importer"
)

func TestParseAPITypeName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		fqn           string
		wantNamespace string
		wantVersion   string
		wantBasename  string
		expectErr     bool
	}{
		{
			name:          "versioned",
			fqn:           "io.k8s.api.apps.v1beta2.Deployment",
			wantNamespace: "io.k8s.api.apps",
			wantVersion:   "v1beta2",
			wantBasename:  "Deployment",
		},
		{
			name:          "stable_version",
			fqn:           "io.k8s.api.core.v1.Pod",
			wantNamespace: "io.k8s.api.core",
			wantVersion:   "v1",
			wantBasename:  "Pod",
		},
		{
			name:          "unversioned",
			fqn:           "io.k8s.apimachinery.pkg.util.intstr.IntOrString",
			wantNamespace: "io.k8s.apimachinery.pkg.util.intstr",
			wantVersion:   "",
			wantBasename:  "IntOrString",
		},
		{
			name:          "bare_name",
			fqn:           "Quantity",
			wantNamespace: "",
			wantVersion:   "",
			wantBasename:  "Quantity",
		},
		{
			// "version" is not a version token, it stays in the namespace.
			name:          "version_like_word",
			fqn:           "io.k8s.version.Info",
			wantNamespace: "io.k8s.version",
			wantVersion:   "",
			wantBasename:  "Info",
		},
		{name: "empty", fqn: "", expectErr: true},
		{name: "trailing_dot", fqn: "io.k8s.api.core.v1.", expectErr: true},
	}

	for _, tc := range tests {
		tc := tc //nolint:copyloopvar // needed pre-Go 1.22
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			parsed, err := importer.ParseAPITypeName(tc.fqn)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNamespace, parsed.Namespace)
			assert.Equal(t, tc.wantVersion, parsed.Version)
			assert.Equal(t, tc.wantBasename, parsed.Basename)
		})
	}
}

func TestAPITypeNameAlias(t *testing.T) {
	t.Parallel()
	naming := importer.DefaultNamingConfig()

	tests := []struct {
		fqn  string
		want string
	}{
		{"io.k8s.api.core.v1.Pod", "Pod"},
		{"io.k8s.api.apps.v1beta2.Deployment", "DeploymentV1Beta2"},
		{"io.k8s.apimachinery.pkg.util.intstr.IntOrString", "IntOrString"},
	}

	for _, tc := range tests {
		tc := tc //nolint:copyloopvar // needed pre-Go 1.22
		parsed, err := importer.ParseAPITypeName(tc.fqn)
		require.NoError(t, err)
		assert.Equal(t, tc.want, parsed.Alias(naming))
	}
}

func coreAPIObject(group, version, kind string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"metadata": map[string]any{"type": "object"},
			"spec":     map[string]any{"type": "object"},
		},
		"x-kubernetes-group-version-kind": []any{
			map[string]any{"group": group, "version": version, "kind": kind},
		},
	}
}

func TestBuildCoreAPIClassification(t *testing.T) {
	t.Parallel()
	doc := map[string]any{
		"definitions": map[string]any{
			"io.k8s.api.apps.v1.Deployment":                 coreAPIObject("apps", "v1", "Deployment"),
			"io.k8s.api.apps.v1beta2.Deployment":            coreAPIObject("apps", "v1beta2", "Deployment"),
			"io.k8s.api.core.v1.PodSpec":                    map[string]any{"type": "object"},
			"io.k8s.apimachinery.pkg.api.resource.Quantity": map[string]any{"type": "string"},
		},
	}

	set, err := importer.BuildCoreAPI(doc, importer.DefaultNamingConfig())
	require.NoError(t, err)
	require.Equal(t, []string{importer.CoreAPIModuleName}, set.Modules())

	defs := set.Definitions(importer.CoreAPIModuleName)
	require.Len(t, defs, 4)

	byFullName := make(map[string]importer.Definition, len(defs))
	for _, d := range defs {
		d := d //nolint:copyloopvar // needed pre-Go 1.22
		byFullName[d.FullName] = d
	}

	// API objects carry the configured prefix.
	assert.Equal(t, "KubeDeployment", byFullName["io.k8s.api.apps.v1.Deployment"].Name)
	assert.Equal(t, "KubeDeploymentV1Beta2", byFullName["io.k8s.api.apps.v1beta2.Deployment"].Name)
	assert.Equal(t, "apps", byFullName["io.k8s.api.apps.v1.Deployment"].GVK.Group)

	// Data types get plain aliases.
	assert.Equal(t, "PodSpec", byFullName["io.k8s.api.core.v1.PodSpec"].Name)
	assert.Equal(t, "Quantity", byFullName["io.k8s.apimachinery.pkg.api.resource.Quantity"].Name)

	for _, d := range defs {
		d := d //nolint:copyloopvar // needed pre-Go 1.22
		assert.False(t, d.Custom, "%s is a core-API definition", d.FullName)
	}
}

func TestBuildCoreAPIGVKWithoutMetadataIsDataType(t *testing.T) {
	t.Parallel()
	// DeleteOptions-style types carry a GVK annotation but no metadata
	// property, so they stay plain data types.
	node := coreAPIObject("", "v1", "DeleteOptions")
	delete(node["properties"].(map[string]any), "metadata")

	doc := map[string]any{
		"definitions": map[string]any{
			"io.k8s.apimachinery.pkg.apis.meta.v1.DeleteOptions": node,
		},
	}

	set, err := importer.BuildCoreAPI(doc, importer.DefaultNamingConfig())
	require.NoError(t, err)

	defs := set.Definitions(importer.CoreAPIModuleName)
	require.Len(t, defs, 1)
	assert.Equal(t, "DeleteOptions", defs[0].Name)
	assert.Empty(t, defs[0].NamePrefix)
}

func TestBuildCoreAPIDeterministicOrder(t *testing.T) {
	t.Parallel()
	doc := map[string]any{
		"definitions": map[string]any{
			"io.k8s.api.core.v1.Pod":       coreAPIObject("", "v1", "Pod"),
			"io.k8s.api.core.v1.PodSpec":   map[string]any{"type": "object"},
			"io.k8s.api.apps.v1.DaemonSet": coreAPIObject("apps", "v1", "DaemonSet"),
		},
	}

	first, err := importer.BuildCoreAPI(doc, importer.DefaultNamingConfig())
	require.NoError(t, err)
	second, err := importer.BuildCoreAPI(doc, importer.DefaultNamingConfig())
	require.NoError(t, err)

	firstNames := make([]string, 0, first.Len())
	for _, d := range first.Definitions(importer.CoreAPIModuleName) {
		d := d //nolint:copyloopvar // needed pre-Go 1.22
		firstNames = append(firstNames, d.FullName)
	}
	secondNames := make([]string, 0, second.Len())
	for _, d := range second.Definitions(importer.CoreAPIModuleName) {
		d := d //nolint:copyloopvar // needed pre-Go 1.22
		secondNames = append(secondNames, d.FullName)
	}

	assert.Equal(t, firstNames, secondNames)
	assert.IsIncreasing(t, firstNames)
}

func TestBuildCoreAPIEmptyDocument(t *testing.T) {
	t.Parallel()
	_, err := importer.BuildCoreAPI(map[string]any{"definitions": map[string]any{}}, importer.DefaultNamingConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no definitions")
}
