package services

import "errors"

// Sentinel errors returned by services and mapped to HTTP status codes at the
// handler boundary.
var (
	// ErrValidationFailed signals a user-correctable input problem.
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicateIdentity signals a registration conflict on the student
	// identifier.
	ErrDuplicateIdentity = errors.New("student identifier already exists")

	// ErrAuthenticationFailed is returned for bad credentials. It is
	// deliberately generic: callers must not learn whether the identifier or
	// the password was wrong.
	ErrAuthenticationFailed = errors.New("invalid student identifier or password")

	// ErrSessionInvalid signals an expired, unknown or hijacked session and
	// forces a re-login.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrNotFound signals a missing record on a gated read.
	ErrNotFound = errors.New("resource not found")

	// ErrPersistence signals an unreachable store or an aborted transaction.
	// Retryable from the caller's perspective; never swallowed.
	ErrPersistence = errors.New("persistence failure")

	// ErrCollaboratorUnavailable signals that response generation failed or
	// timed out. The inbound message is still recorded when this is returned.
	ErrCollaboratorUnavailable = errors.New("response generation unavailable")
)
