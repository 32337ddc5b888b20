// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/schemabind/schemabind/pkg/errors"
)

// StrippedValueMarker replaces string values that fail the legal-character
// policy. It must never surface in a resolved identifier.
const StrippedValueMarker = "__stripped_value__"

var (
	// legalKeyPattern is the character class every map key must satisfy
	// unless it is explicitly allow-listed. Keys become identifiers and
	// map lookups downstream, so a violation is fatal.
	legalKeyPattern = regexp.MustCompile(`^[\w.\-/#,]*$`)

	// legalValuePattern is the default character class for string values.
	legalValuePattern = regexp.MustCompile(`^[\w.\-/#,]*$`)

	// legalEnumValuePattern is the looser class used for members of an
	// enum array, which legitimately carry spaces and operator characters.
	legalEnumValuePattern = regexp.MustCompile(`^[\w.\-/#,+:* ]*$`)
)

// allowedKeys are keys that fail the character class but are part of the
// JSON Schema vocabulary and must pass through untouched.
var allowedKeys = map[string]struct{}{
	"$ref":    {},
	"$schema": {},
}

// ValueSanitizer inspects a string value at a given tree path and returns a
// replacement plus true, or false when it does not apply. Sanitizers are
// consulted in order; the first applicable one wins.
type ValueSanitizer func(path []string, value string) (string, bool)

// sanitizeDescription neutralizes the comment-terminator sequence in
// description fields. Descriptions are free text, so it claims every value
// whose terminal path segment is "description" and exempts them from the
// legal-character policy.
func sanitizeDescription(path []string, value string) (string, bool) {
	if len(path) == 0 || path[len(path)-1] != "description" {
		return "", false
	}
	return strings.ReplaceAll(value, "*/", "*\\/"), true
}

// sanitizeLegalCharacters replaces values that violate the legal character
// class with StrippedValueMarker. Members of an enum array get the looser
// class first.
func sanitizeLegalCharacters(path []string, value string) (string, bool) {
	if isEnumMemberPath(path) {
		if legalEnumValuePattern.MatchString(value) {
			return value, true
		}
		return StrippedValueMarker, true
	}
	if legalValuePattern.MatchString(value) {
		return value, true
	}
	return StrippedValueMarker, true
}

// isEnumMemberPath reports whether the path terminates in enum/<index>.
func isEnumMemberPath(path []string) bool {
	if len(path) < 2 || path[len(path)-2] != "enum" {
		return false
	}
	for _, r := range path[len(path)-1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return path[len(path)-1] != ""
}

// defaultValueSanitizers returns the ordered sanitizer chain.
func defaultValueSanitizers() []ValueSanitizer {
	return []ValueSanitizer{
		sanitizeDescription,
		sanitizeLegalCharacters,
	}
}

// Sanitize walks a parsed document tree and enforces the character-set
// policy on every key and string value, returning a new tree. Key
// violations abort the whole document; value violations are corrected
// in place and never raise.
func Sanitize(node any) (any, error) {
	return sanitizeNode(nil, node, defaultValueSanitizers())
}

func sanitizeNode(path []string, node any, sanitizers []ValueSanitizer) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		// Validate every key before transforming any value in this subtree.
		keys := make([]string, 0, len(v))
		for key := range v {
			if err := checkKey(path, key); err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(v))
		for _, key := range keys {
			child, err := sanitizeNode(append(path, key), v[key], sanitizers)
			if err != nil {
				return nil, err
			}
			out[key] = child
		}
		return out, nil

	case map[any]any:
		// YAML allows non-string keys; the key policy does not.
		out := make(map[string]any, len(v))
		for key := range v {
			str, ok := key.(string)
			if !ok {
				return nil, errors.NewMalformedDocumentError(
					fmt.Sprintf("non-string key %v at path %q", key, strings.Join(path, "/")), nil)
			}
			if err := checkKey(path, str); err != nil {
				return nil, err
			}
		}
		for key, val := range v {
			str := key.(string)
			child, err := sanitizeNode(append(path, str), val, sanitizers)
			if err != nil {
				return nil, err
			}
			out[str] = child
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			child, err := sanitizeNode(append(path, fmt.Sprintf("%d", i)), item, sanitizers)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil

	case string:
		for _, sanitize := range sanitizers {
			if replaced, ok := sanitize(path, v); ok {
				return replaced, nil
			}
		}
		return v, nil

	default:
		// Scalars other than strings carry no character-set risk.
		return node, nil
	}
}

func checkKey(path []string, key string) error {
	if _, ok := allowedKeys[key]; ok {
		return nil
	}
	if legalKeyPattern.MatchString(key) {
		return nil
	}
	return errors.NewMalformedDocumentError(
		fmt.Sprintf("illegal key %q at path %q", key, strings.Join(path, "/")), nil)
}
