// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	// crdKind is the kind literal identifying a Custom Resource Definition.
	crdKind = "CustomResourceDefinition"

	// listKind marks wrapper documents whose items must be flattened.
	listKind = "List"
)

// ParseDocuments decodes a (possibly multi-document) YAML or JSON stream
// into untyped trees. Empty documents are skipped.
func ParseDocuments(data []byte) ([]any, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var docs []any
	for {
		var doc any
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		if doc == nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// CollectCRDs walks parsed documents and returns every object whose kind is
// CustomResourceDefinition, recursively flattening "kind: List" wrappers at
// unbounded depth. Non-CRD items and empty entries are ignored.
func CollectCRDs(docs []any) []map[string]any {
	var crds []map[string]any
	for _, doc := range docs {
		crds = appendCRDs(crds, doc)
	}
	return crds
}

func appendCRDs(crds []map[string]any, doc any) []map[string]any {
	obj, ok := doc.(map[string]any)
	if !ok || len(obj) == 0 {
		return crds
	}

	switch kindOf(obj) {
	case crdKind:
		return append(crds, obj)
	case listKind:
		items, _ := obj["items"].([]any)
		for _, item := range items {
			crds = appendCRDs(crds, item)
		}
		return crds
	default:
		return crds
	}
}

func kindOf(obj map[string]any) string {
	kind, _ := obj["kind"].(string)
	return kind
}

// stringField returns the string value at key, or "" when absent or not a string.
func stringField(obj map[string]any, key string) string {
	value, _ := obj[key].(string)
	return value
}

// mapField returns the map value at key, or nil when absent or not a map.
func mapField(obj map[string]any, key string) map[string]any {
	value, _ := obj[key].(map[string]any)
	return value
}
