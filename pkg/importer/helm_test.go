// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemabind/schemabind/pkg/errors"
	"github.com/schemabind/schemabind/pkg/importer"
)

func TestParseHelmLocator(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		source      string
		wantRef     string
		wantChart   string
		wantVersion string
		wantOCI     bool
		expectErr   bool
	}{
		{
			name:        "https_repo",
			source:      "helm:https://charts.example.com/redis@17.0.0",
			wantRef:     "https://charts.example.com/redis",
			wantChart:   "redis",
			wantVersion: "17.0.0",
		},
		{
			name:        "oci_registry",
			source:      "helm:oci://registry.example.com/library/cert-manager@1.13.2",
			wantRef:     "oci://registry.example.com/library/cert-manager",
			wantChart:   "cert-manager",
			wantVersion: "1.13.2",
			wantOCI:     true,
		},
		{name: "missing_version", source: "helm:https://charts.example.com/redis", expectErr: true},
		{name: "loose_semver", source: "helm:https://charts.example.com/redis@17", expectErr: true},
		{name: "non_semver", source: "helm:https://charts.example.com/redis@latest", expectErr: true},
		{name: "missing_scheme", source: "helm:charts.example.com/redis@17.0.0", expectErr: true},
	}

	for _, tc := range tests {
		tc := tc //nolint:copyloopvar // needed pre-Go 1.22
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			locator, err := importer.ParseHelmLocator(tc.source)
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidSpec(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantRef, locator.Ref)
			assert.Equal(t, tc.wantChart, locator.Chart)
			assert.Equal(t, tc.wantVersion, locator.Version.String())
			assert.Equal(t, tc.wantOCI, locator.OCI())
		})
	}
}

// stubChartPuller materializes a canned chart layout and remembers where.
type stubChartPuller struct {
	schema  []byte
	destDir string
	err     error
}

func (p *stubChartPuller) Pull(_ context.Context, locator *importer.HelmLocator, destDir string) error {
	if p.err != nil {
		return p.err
	}
	p.destDir = destDir
	chartDir := filepath.Join(destDir, locator.Chart)
	if err := os.MkdirAll(chartDir, 0o750); err != nil {
		return err
	}
	if p.schema == nil {
		return nil
	}
	return os.WriteFile(filepath.Join(chartDir, "values.schema.json"), p.schema, 0o600)
}

func helmEngine(t *testing.T, puller importer.ChartPuller) *importer.Engine {
	t.Helper()
	e, err := importer.NewEngine(importer.DefaultEngineConfig(),
		importer.WithFetcher(&stubFetcher{}),
		importer.WithChartPuller(puller))
	require.NoError(t, err)
	return e
}

func TestHelmImport(t *testing.T) {
	t.Parallel()
	puller := &stubChartPuller{schema: []byte(`{
  "type": "object",
  "properties": {
    "replicaCount": {"type": "integer"},
    "image": {"type": "object"}
  }
}`)}
	e := helmEngine(t, puller)

	imp, err := e.Resolve(mustSpec(t, "helm:https://charts.example.com/cert-manager@1.13.2"))
	require.NoError(t, err)

	set, err := imp.Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"cert-manager"}, set.Modules())
	defs := set.Definitions("cert-manager")
	require.Len(t, defs, 1)
	assert.Equal(t, "CertManager", defs[0].Name)
	assert.True(t, defs[0].Custom)
	assert.Equal(t, "1.13.2", defs[0].GVK.Version)

	// The staging directory must be gone after the import returns.
	_, statErr := os.Stat(puller.destDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestHelmImportModulePrefix(t *testing.T) {
	t.Parallel()
	puller := &stubChartPuller{schema: []byte(`{"type": "object"}`)}
	e := helmEngine(t, puller)

	imp, err := e.Resolve(mustSpec(t, "cache:=helm:https://charts.example.com/redis@17.0.0"))
	require.NoError(t, err)

	set, err := imp.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cache-redis"}, set.Modules())
}

func TestHelmImportMissingValuesSchema(t *testing.T) {
	t.Parallel()
	puller := &stubChartPuller{}
	e := helmEngine(t, puller)

	imp, err := e.Resolve(mustSpec(t, "helm:https://charts.example.com/redis@17.0.0"))
	require.NoError(t, err)

	_, err = imp.Import(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsMalformedDocument(err))
	assert.Contains(t, err.Error(), "values.schema.json")

	_, statErr := os.Stat(puller.destDir)
	assert.True(t, os.IsNotExist(statErr), "staging directory removed on failure too")
}

func TestHelmImportPullFailure(t *testing.T) {
	t.Parallel()
	puller := &stubChartPuller{err: errors.NewSourceResolutionError("helm pull failed", nil)}
	e := helmEngine(t, puller)

	imp, err := e.Resolve(mustSpec(t, "helm:https://charts.example.com/redis@17.0.0"))
	require.NoError(t, err)

	_, err = imp.Import(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsSourceResolution(err))
}

func TestHelmImportInvalidSchemaJSON(t *testing.T) {
	t.Parallel()
	puller := &stubChartPuller{schema: []byte("{not json")}
	e := helmEngine(t, puller)

	imp, err := e.Resolve(mustSpec(t, "helm:https://charts.example.com/redis@17.0.0"))
	require.NoError(t, err)

	_, err = imp.Import(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsMalformedDocument(err))
}
