package service

import (
	"errors"

	"tracker/internal/auth"
)

// Error taxonomy surfaced to callers. Errors are wrapped with context, so
// match them with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = auth.ErrForbidden
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
