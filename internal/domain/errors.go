package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
)

// Command and resolution errors.
var (
	// ErrUsage means the command text does not match its grammar.
	ErrUsage = errors.New("usage error")
	// ErrUnknownSourceLanguage means the source code is well formed but not in the catalog.
	ErrUnknownSourceLanguage = errors.New("unknown source language")
	// ErrUnknownTargetLanguage means the target code is well formed but not in the catalog.
	ErrUnknownTargetLanguage = errors.New("unknown target language")
	// ErrBackingStore hides any transport failure behind a request-level error.
	ErrBackingStore = errors.New("backing store failure")
	// ErrDataIntegrity marks a lexicon row that cannot be indexed.
	ErrDataIntegrity = errors.New("data integrity violation")
	// ErrTranslationDisabled is returned when no translation provider is configured.
	ErrTranslationDisabled = errors.New("translation disabled")
)

// DataIntegrityError describes a lexicon row rejected while building the index.
type DataIntegrityError struct {
	ID       int64
	Headword string
	Reason   string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: row %d (%q): %s", e.ID, e.Headword, e.Reason)
}

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
