package usecase

import (
	"errors"
	"fmt"

	"cinema-api/pkg/utils"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// FieldError is a validation failure with per-field messages.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, utils.FormatValidationErrors(e.Fields))
}

func (e *FieldError) Unwrap() error { return ErrValidation }

func fieldError(field, msg string) error {
	return &FieldError{Fields: map[string]string{field: msg}}
}

func fieldErrors(fields map[string]string) error {
	return &FieldError{Fields: fields}
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
}
