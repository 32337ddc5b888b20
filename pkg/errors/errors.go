// SPDX-FileCopyrightText: Copyright 2026 Schemabind Authors
// SPDX-License-Identifier: Apache-2.0

// Package errors defines the error taxonomy used by the import engine.
package errors

import (
	"errors"
	"fmt"
)

// Error types
const (
	// ErrInvalidSpec is returned when an import specification string cannot be parsed
	ErrInvalidSpec = "invalid_spec"

	// ErrMalformedDocument is returned when a schema document is structurally unusable
	// (unsupported apiVersion, missing spec, no resolvable versions, illegal key)
	ErrMalformedDocument = "malformed_document"

	// ErrAmbiguousMerge is returned when merging CRD documents produces a conflict
	ErrAmbiguousMerge = "ambiguous_merge"

	// ErrSchemaValidation is returned when a document fails meta-schema validation
	ErrSchemaValidation = "schema_validation"

	// ErrSourceResolution is returned when an import source cannot be resolved or fetched
	ErrSourceResolution = "source_resolution"

	// ErrInternal is returned when there is an internal error
	ErrInternal = "internal"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidSpecError creates a new invalid import specification error
func NewInvalidSpecError(message string, cause error) *Error {
	return NewError(ErrInvalidSpec, message, cause)
}

// NewMalformedDocumentError creates a new malformed document error
func NewMalformedDocumentError(message string, cause error) *Error {
	return NewError(ErrMalformedDocument, message, cause)
}

// NewAmbiguousMergeError creates a new ambiguous merge error
func NewAmbiguousMergeError(message string, cause error) *Error {
	return NewError(ErrAmbiguousMerge, message, cause)
}

// NewSchemaValidationError creates a new schema validation error
func NewSchemaValidationError(message string, cause error) *Error {
	return NewError(ErrSchemaValidation, message, cause)
}

// NewSourceResolutionError creates a new source resolution error
func NewSourceResolutionError(message string, cause error) *Error {
	return NewError(ErrSourceResolution, message, cause)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *Error {
	return NewError(ErrInternal, message, cause)
}

func isType(err error, errorType string) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == errorType
}

// IsInvalidSpec checks if the error is an invalid import specification error
func IsInvalidSpec(err error) bool {
	return isType(err, ErrInvalidSpec)
}

// IsMalformedDocument checks if the error is a malformed document error
func IsMalformedDocument(err error) bool {
	return isType(err, ErrMalformedDocument)
}

// IsAmbiguousMerge checks if the error is an ambiguous merge error
func IsAmbiguousMerge(err error) bool {
	return isType(err, ErrAmbiguousMerge)
}

// IsSchemaValidation checks if the error is a schema validation error
func IsSchemaValidation(err error) bool {
	return isType(err, ErrSchemaValidation)
}

// IsSourceResolution checks if the error is a source resolution error
func IsSourceResolution(err error) bool {
	return isType(err, ErrSourceResolution)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return isType(err, ErrInternal)
}
