package core

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable classification of a conversion failure.
type ErrorKind string

const (
	// KindMalformedInput: the input is not parseable JSON. Never retried.
	KindMalformedInput ErrorKind = "malformed_input"
	// KindSchema: valid JSON but not a valid collection. Never retried.
	KindSchema ErrorKind = "schema"
	// KindGenerationService: the generation service failed transiently.
	// Handled internally; never surfaced as a conversion failure on its own.
	KindGenerationService ErrorKind = "generation_service"
	// KindGenerationDegraded: scenarios fell back to templates. Non-fatal,
	// recorded in Result.Warnings alongside a successful conversion.
	KindGenerationDegraded ErrorKind = "generation_degraded"
	// KindAssembly: two artifacts resolved to the same path. An internal
	// invariant violation.
	KindAssembly ErrorKind = "assembly"
	// KindInternal: anything else.
	KindInternal ErrorKind = "internal"
)

// ConversionError is the typed failure a conversion surfaces to its caller.
type ConversionError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConversionError) Unwrap() error { return e.Err }

// KindOf extracts the error kind from err, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// InputError reports whether the failure was caused by the caller's input
// rather than the service.
func (k ErrorKind) InputError() bool {
	return k == KindMalformedInput || k == KindSchema
}
