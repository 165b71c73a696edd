package core

// validation.go provides per-field validation for cell edits.
//
// Validation is applied only when a value is edited, never at import time:
// the codecs load whatever the source file contains, and the store refuses to
// replace a field with a value that fails its rule.
//
// Two modes exist. ValidationStrict enforces what the rules are meant to
// express (digit-only numbers, exact enum values). ValidationLegacy keeps the
// lenient legacy rules: the numeric rule accepts any non-empty string and
// the enum rules are prefix matches.

import (
	"fmt"
	"strings"
)

// ValidationMode selects the rule set used by a Validator.
type ValidationMode int

const (
	ValidationStrict ValidationMode = iota
	ValidationLegacy

	validationModeCount
)

// ParseValidationMode parses "strict" or "legacy" (case-insensitive).
func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ValidationStrict, nil
	case "legacy":
		return ValidationLegacy, nil
	default:
		return ValidationStrict, fmt.Errorf("unknown validation mode %q (use strict or legacy)", s)
	}
}

func (m ValidationMode) String() string {
	if m == ValidationLegacy {
		return "legacy"
	}
	return "strict"
}

// ValidationError represents a rejected candidate value for a field.
type ValidationError struct {
	Field   string // Field accessor key
	Value   string // The rejected value
	Message string // Human-readable rule description
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %q %s", e.Field, e.Value, e.Message)
}

// Unwrap lets callers test for ErrValidationRejected with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidationRejected
}

// Validator checks candidate values against the field schema.
// It is a pure function of (field, value); the zero value validates strictly.
type Validator struct {
	Mode ValidationMode
}

// NewValidator creates a validator for the given mode.
func NewValidator(mode ValidationMode) Validator {
	if mode < 0 || mode >= validationModeCount {
		mode = ValidationStrict
	}
	return Validator{Mode: mode}
}

// Validate returns nil if value satisfies the rule of field, or a
// *ValidationError describing the rejection.
func (v Validator) Validate(field Field, value string) error {
	if field < 0 || field >= fieldCount {
		return fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}
	rule := RuleFor(field, v.Mode)
	if rule.Match(value) {
		return nil
	}
	return &ValidationError{
		Field:   field.String(),
		Value:   value,
		Message: rule.Message,
	}
}

// ValidateRecord validates every field of a record and returns all failures.
// Useful for reporting how much of an imported file would survive editing.
func (v Validator) ValidateRecord(r Record) []ValidationError {
	var errs []ValidationError
	for _, f := range allFields {
		if err := v.Validate(f, r.Value(f)); err != nil {
			if ve, ok := err.(*ValidationError); ok {
				errs = append(errs, *ve)
			}
		}
	}
	return errs
}
