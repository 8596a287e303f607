package service

import "errors"

// Common service errors. Handlers map these to HTTP status codes.
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input fails a domain rule
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned on an integrity conflict, such as deleting
	// a client that still has projects
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when no authenticated actor is present.
	// Mutations never fall back to a default identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermissionDenied is returned when the actor lacks the required role
	// or targets a protected record
	ErrPermissionDenied = errors.New("permission denied")
)
