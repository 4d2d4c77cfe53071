// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across form/session/gateway layers.
var (
	// ErrValidation indicates client-side validation failed; the request was never sent.
	ErrValidation = errors.New("validation failed")

	// ErrSubmitting indicates a submit was ignored because one is already in flight.
	ErrSubmitting = errors.New("submission in flight")

	// ErrNoSession indicates no stored session (access token absent).
	ErrNoSession = errors.New("no session")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
