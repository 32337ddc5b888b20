// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/schemabind/schemabind/pkg/errors"
)

//go:embed data/crd-meta-schema.json
var metaSchemaFS embed.FS

var (
	metaSchemaOnce sync.Once
	metaSchema     *jsonschema.Schema
	metaSchemaErr  error
)

func crdMetaSchema() (*jsonschema.Schema, error) {
	metaSchemaOnce.Do(func() {
		data, err := metaSchemaFS.ReadFile("data/crd-meta-schema.json")
		if err != nil {
			metaSchemaErr = fmt.Errorf("failed to load embedded CRD meta-schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		const schemaID = "file://local/crd-meta-schema.json"
		if err := compiler.AddResource(schemaID, strings.NewReader(string(data))); err != nil {
			metaSchemaErr = fmt.Errorf("failed to add meta-schema resource: %w", err)
			return
		}
		metaSchema, metaSchemaErr = compiler.Compile(schemaID)
		if metaSchemaErr != nil {
			metaSchemaErr = fmt.Errorf("failed to compile CRD meta-schema: %w", metaSchemaErr)
		}
	})
	return metaSchema, metaSchemaErr
}

// ValidateCRDs checks every discovered CRD document against the embedded
// meta-schema. All structural violations across all documents are collected
// and reported as one aggregated failure; there is no partial success.
func ValidateCRDs(docs []map[string]any) error {
	schema, err := crdMetaSchema()
	if err != nil {
		return errors.NewInternalError("CRD meta-schema unavailable", err)
	}

	var messages []string
	for i, doc := range docs {
		instance, err := toJSONValue(doc)
		if err != nil {
			return errors.NewInternalError(fmt.Sprintf("failed to normalize document %d", i), err)
		}

		if err := schema.Validate(instance); err != nil {
			label := documentLabel(doc, i)
			if validationErr, ok := err.(*jsonschema.ValidationError); ok {
				var docMessages []string
				collectValidationErrors(validationErr, &docMessages)
				for _, msg := range docMessages {
					messages = append(messages, fmt.Sprintf("%s: %s", label, msg))
				}
				continue
			}
			messages = append(messages, fmt.Sprintf("%s: %s", label, err))
		}
	}

	if len(messages) == 0 {
		return nil
	}

	if len(messages) == 1 {
		return errors.NewSchemaValidationError(
			fmt.Sprintf("CRD validation failed: %s", messages[0]), nil)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CRD validation failed with %d errors:", len(messages))
	for i, msg := range messages {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, msg)
	}
	return errors.NewSchemaValidationError(b.String(), nil)
}

// collectValidationErrors recursively collects leaf validation error
// messages, skipping parent errors that merely wrap their causes.
func collectValidationErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err == nil {
		return
	}

	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			collectValidationErrors(cause, messages)
		}
		return
	}

	if err.Message != "" {
		var pathStr string
		if err.InstanceLocation != "" {
			pathStr = fmt.Sprintf(" at '%s'", err.InstanceLocation)
		}
		*messages = append(*messages, err.Message+pathStr)
	}
}

// toJSONValue re-encodes a decoded YAML tree into JSON-native types so the
// validator sees the same value shapes a JSON parse would produce.
func toJSONValue(doc map[string]any) (any, error) {
	yamlBytes, err := sigsyaml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	jsonBytes, err := sigsyaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, err
	}

	var instance any
	if err := json.Unmarshal(jsonBytes, &instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func documentLabel(doc map[string]any, index int) string {
	spec := mapField(doc, "spec")
	group := stringField(spec, "group")
	kind := stringField(mapField(spec, "names"), "kind")
	if group != "" && kind != "" {
		return fmt.Sprintf("%s/%s", group, kind)
	}
	return fmt.Sprintf("document %d", index)
}
