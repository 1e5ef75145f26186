package errors

import (
	"fmt"
)

// ParseError represents a configuration decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration and unit system definition issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnitSystemNotFoundError reports a lookup of a system id absent from the registry.
type UnitSystemNotFoundError struct {
	SystemID string
}

// NewUnitSystemNotFoundError constructs a UnitSystemNotFoundError.
func NewUnitSystemNotFoundError(systemID string) error {
	return &UnitSystemNotFoundError{SystemID: systemID}
}

func (e *UnitSystemNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("Unit system '%s' not found", e.SystemID)
}

// UnitNotFoundError reports a unit symbol that the given system does not define.
type UnitNotFoundError struct {
	Unit     string
	SystemID string
}

// NewUnitNotFoundError constructs a UnitNotFoundError.
func NewUnitNotFoundError(unit, systemID string) error {
	return &UnitNotFoundError{Unit: unit, SystemID: systemID}
}

func (e *UnitNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("Unit '%s' not found in system '%s'", e.Unit, e.SystemID)
}

// MissingContextError reports a relative unit whose reference quantity was not supplied.
// Reference is the human name of the missing slot ("Reference width", "Font size", ...)
// and Conversion names the unit kind being resolved ("percentage", "em", ...).
type MissingContextError struct {
	SystemID   string
	Unit       string
	Field      string
	Reference  string
	Conversion string
}

// NewMissingContextError constructs a MissingContextError.
func NewMissingContextError(systemID, unit, field, reference, conversion string) error {
	return &MissingContextError{
		SystemID:   systemID,
		Unit:       unit,
		Field:      field,
		Reference:  reference,
		Conversion: conversion,
	}
}

func (e *MissingContextError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s required for %s conversion", e.Reference, e.Conversion)
}

// ZeroReferenceError reports a relative conversion out of the internal unit against a
// reference of zero, which has no finite result.
type ZeroReferenceError struct {
	SystemID   string
	Unit       string
	Field      string
	Reference  string
	Conversion string
}

// NewZeroReferenceError constructs a ZeroReferenceError.
func NewZeroReferenceError(systemID, unit, field, reference, conversion string) error {
	return &ZeroReferenceError{
		SystemID:   systemID,
		Unit:       unit,
		Field:      field,
		Reference:  reference,
		Conversion: conversion,
	}
}

func (e *ZeroReferenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s must be non-zero for %s conversion", e.Reference, e.Conversion)
}
