package service

import "errors"

// Closed error taxonomy. Handlers map these to HTTP statuses in exactly
// one place; services wrap them with context via fmt.Errorf("...: %w", ...).
var (
	ErrInvalid      = errors.New("invalid request")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
