// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/schemabind/schemabind/pkg/errors"
	"github.com/schemabind/schemabind/pkg/logger"
)

// helmSchemePrefix marks a helm chart locator.
const helmSchemePrefix = "helm:"

// valuesSchemaFile is the chart-embedded JSON schema for chart values.
const valuesSchemaFile = "values.schema.json"

// HelmLocator is a parsed helm chart reference:
// helm:<scheme><repo-or-registry>[/<chart>]@<semver>.
type HelmLocator struct {
	// Ref is the chart reference without the helm: prefix and version.
	Ref string

	// Chart is the chart name, the last path segment of Ref.
	Chart string

	// Version is the requested chart version. It must be valid semver;
	// this is checked before any network access happens.
	Version *semver.Version
}

// OCI reports whether the locator points at an OCI registry.
func (l *HelmLocator) OCI() bool {
	return strings.HasPrefix(l.Ref, "oci://")
}

// ParseHelmLocator parses and validates a helm chart locator.
func ParseHelmLocator(source string) (*HelmLocator, error) {
	rest := strings.TrimPrefix(source, helmSchemePrefix)

	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return nil, errors.NewInvalidSpecError(
			fmt.Sprintf("helm locator %q is missing a version: expected helm:<repo>/<chart>@<semver>", source), nil)
	}
	ref, versionStr := rest[:at], rest[at+1:]

	version, err := semver.StrictNewVersion(versionStr)
	if err != nil {
		return nil, errors.NewInvalidSpecError(
			fmt.Sprintf("helm locator %q has invalid chart version %q", source, versionStr), err)
	}

	if !strings.Contains(ref, "://") {
		return nil, errors.NewInvalidSpecError(
			fmt.Sprintf("helm locator %q does not include a scheme", source), nil)
	}

	chart := ref[strings.LastIndex(ref, "/")+1:]
	if chart == "" || strings.HasSuffix(chart, "//") {
		return nil, errors.NewInvalidSpecError(
			fmt.Sprintf("helm locator %q does not name a chart", source), nil)
	}

	return &HelmLocator{Ref: ref, Chart: chart, Version: version}, nil
}

// ChartPuller fetches and unpacks a chart archive into a directory. The
// default implementation shells out to the helm binary; tests substitute
// their own.
type ChartPuller interface {
	Pull(ctx context.Context, locator *HelmLocator, destDir string) error
}

type execChartPuller struct{}

func (*execChartPuller) Pull(ctx context.Context, locator *HelmLocator, destDir string) error {
	args := []string{"pull"}
	if locator.OCI() {
		args = append(args, locator.Ref)
	} else {
		repo := strings.TrimSuffix(locator.Ref, "/"+locator.Chart)
		args = append(args, locator.Chart, "--repo", repo)
	}
	args = append(args,
		"--version", locator.Version.String(),
		"--untar",
		"--untardir", destDir,
	)

	// #nosec G204: arguments are derived from a validated locator.
	cmd := exec.CommandContext(ctx, "helm", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errors.NewSourceResolutionError(
			fmt.Sprintf("helm pull failed for %q: %s", locator.Ref, strings.TrimSpace(string(output))), err)
	}
	return nil
}

// HelmImporter imports the values schema embedded in a helm chart.
type HelmImporter struct {
	engine  *Engine
	spec    ImportSpec
	locator *HelmLocator
}

// Locator returns the parsed chart locator.
func (i *HelmImporter) Locator() *HelmLocator {
	return i.locator
}

// Import pulls the chart into a scoped staging directory and runs its values
// schema through the sanitization and model-building pipeline. The staging
// directory is removed on every exit path; a failed removal is logged but
// never masks the import error.
func (i *HelmImporter) Import(ctx context.Context) (*DefinitionSet, error) {
	stagingDir, err := os.MkdirTemp("", "schemabind-helm-")
	if err != nil {
		return nil, errors.NewInternalError("failed to create staging directory", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(stagingDir); rmErr != nil {
			logger.Warnf("failed to remove staging directory %s: %v", stagingDir, rmErr)
		}
	}()

	if err := i.engine.puller.Pull(ctx, i.locator, stagingDir); err != nil {
		return nil, err
	}

	schemaPath, err := findValuesSchema(stagingDir, i.locator.Chart)
	if err != nil {
		return nil, err
	}

	// #nosec G304: the path is inside the staging directory we created.
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, errors.NewSourceResolutionError(
			fmt.Sprintf("failed to read %s from chart %q", valuesSchemaFile, i.locator.Chart), err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewMalformedDocumentError(
			fmt.Sprintf("chart %q has an invalid %s", i.locator.Chart, valuesSchemaFile), err)
	}

	sanitized, err := Sanitize(doc)
	if err != nil {
		return nil, err
	}

	naming := i.engine.cfg.Naming
	kind := chartKindName(i.locator.Chart)
	set := NewDefinitionSet()
	set.Add(moduleName(i.spec.ModuleNamePrefix, i.locator.Chart), Definition{
		FullName:   i.locator.Chart,
		GVK:        groupVersionKind(i.locator.Chart, i.locator.Version.String(), kind),
		Name:       naming.CustomName(kind, i.locator.Version.String(), true),
		Schema:     sanitized.(map[string]any),
		Custom:     true,
		NamePrefix: i.spec.ModuleNamePrefix,
	})
	return set, nil
}

func findValuesSchema(stagingDir, chart string) (string, error) {
	direct := filepath.Join(stagingDir, chart, valuesSchemaFile)
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}

	matches, err := filepath.Glob(filepath.Join(stagingDir, "*", valuesSchemaFile))
	if err == nil && len(matches) > 0 {
		return matches[0], nil
	}
	return "", errors.NewMalformedDocumentError(
		fmt.Sprintf("chart %q does not contain a %s", chart, valuesSchemaFile), nil)
}

// chartKindName turns a chart name into an identifier: "cert-manager"
// becomes "CertManager".
func chartKindName(chart string) string {
	parts := strings.FieldsFunc(chart, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(upperFirst(part))
	}
	return b.String()
}
