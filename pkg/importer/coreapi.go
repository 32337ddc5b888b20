// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/schemabind/schemabind/pkg/errors"
)

// versionTokenPattern matches the version segment of a fully-qualified API
// type name: v<major> optionally followed by alpha|beta and a subversion.
var versionTokenPattern = regexp.MustCompile(`^v(\d+)(?:(alpha|beta)(\d+))?$`)

// APITypeName is the decomposition of a fully-qualified dotted type name
// such as "io.k8s.api.apps.v1beta2.Deployment".
type APITypeName struct {
	Namespace string
	Version   string
	Basename  string
}

// ParseAPITypeName splits a fully-qualified dotted name into namespace, an
// optional version token, and the basename.
func ParseAPITypeName(fqn string) (APITypeName, error) {
	parts := strings.Split(fqn, ".")
	if fqn == "" || parts[len(parts)-1] == "" {
		return APITypeName{}, errors.NewMalformedDocumentError(
			fmt.Sprintf("invalid API type name %q", fqn), nil)
	}

	name := APITypeName{Basename: parts[len(parts)-1]}
	rest := parts[:len(parts)-1]
	if len(rest) > 0 && versionTokenPattern.MatchString(rest[len(rest)-1]) {
		name.Version = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	name.Namespace = strings.Join(rest, ".")
	return name, nil
}

// Alias derives the canonical alphanumeric identifier for a plain data type.
// Non-primary versions keep a title-cased version suffix so the same
// basename never collides across API versions.
func (a APITypeName) Alias(naming NamingConfig) string {
	alias := upperFirst(a.Basename)
	if a.Version != "" && a.Version != naming.PrimaryVersion {
		alias += titleCaseVersion(a.Version)
	}
	return alias
}

// groupVersionKindOf extracts the first x-kubernetes-group-version-kind
// annotation from a schema node, if present.
func groupVersionKindOf(node map[string]any) (schema.GroupVersionKind, bool) {
	annotations, ok := node["x-kubernetes-group-version-kind"].([]any)
	if !ok || len(annotations) == 0 {
		return schema.GroupVersionKind{}, false
	}
	first, ok := annotations[0].(map[string]any)
	if !ok {
		return schema.GroupVersionKind{}, false
	}
	return schema.GroupVersionKind{
		Group:   stringField(first, "group"),
		Version: stringField(first, "version"),
		Kind:    stringField(first, "kind"),
	}, true
}

// BuildCoreAPI classifies every definition of the upstream Kubernetes API
// schema document as either an API object (carries a GVK annotation and a
// metadata property) or a plain data type, and emits them all under the
// core-API module. Classification is structural, so it tracks upstream
// schema evolution without a hardcoded type list.
func BuildCoreAPI(doc map[string]any, naming NamingConfig) (*DefinitionSet, error) {
	definitions := mapField(doc, "definitions")
	if definitions == nil {
		definitions = doc
	}
	if len(definitions) == 0 {
		return nil, errors.NewMalformedDocumentError(
			"core API schema document contains no definitions", nil)
	}

	fqns := make([]string, 0, len(definitions))
	for fqn := range definitions {
		fqns = append(fqns, fqn)
	}
	sort.Strings(fqns)

	set := NewDefinitionSet()
	for _, fqn := range fqns {
		node, ok := definitions[fqn].(map[string]any)
		if !ok {
			continue
		}

		gvk, hasGVK := groupVersionKindOf(node)
		properties := mapField(node, "properties")
		_, hasMetadata := properties["metadata"]

		if hasGVK && hasMetadata {
			set.Add(CoreAPIModuleName, Definition{
				FullName:   fqn,
				GVK:        gvk,
				Name:       naming.CoreName(gvk.Kind, gvk.Version),
				Schema:     node,
				Custom:     false,
				NamePrefix: naming.CoreAPIPrefix,
				NameSuffix: coreSuffix(naming, gvk.Version),
			})
			continue
		}

		parsed, err := ParseAPITypeName(fqn)
		if err != nil {
			return nil, err
		}
		set.Add(CoreAPIModuleName, Definition{
			FullName:   fqn,
			GVK:        schema.GroupVersionKind{Version: parsed.Version, Kind: parsed.Basename},
			Name:       parsed.Alias(naming),
			Schema:     node,
			Custom:     false,
			NameSuffix: coreSuffix(naming, parsed.Version),
		})
	}
	return set, nil
}

func coreSuffix(naming NamingConfig, version string) string {
	if version == "" || version == naming.PrimaryVersion {
		return ""
	}
	return titleCaseVersion(version)
}
