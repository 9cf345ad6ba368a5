// Package common defines sentinel errors shared by the repositories and store
// services. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrVersionConflict = errors.New("version conflict")

	// ErrorIncorrectInput is returned when a required identity key is missing.
	ErrorIncorrectInput = errors.New("incorrect input")
)
