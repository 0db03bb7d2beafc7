package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// Returned by the service and workflow layers. HTTP status failures from the
// backends map onto the general errors via apiclient.Error.Is.
// -----------------------------------------------------------------------------

// Auth errors
var (
	ErrInvalidCredentials = errors.New("email and password are required")
	ErrInvalidRole        = errors.New("invalid role")
)

// Cart errors
var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart is empty")
)

// General errors
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternalError = errors.New("internal error")
)
