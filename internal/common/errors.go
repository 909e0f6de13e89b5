// Package common defines shared constants and sentinel errors used across
// authd components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Credential errors. Unknown user and wrong password are deliberately
	// indistinguishable to callers.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// Auth errors (malformed, expired, or tampered token, or a token whose
	// subject no longer exists).
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrNotAdmin is returned for a valid session that is not the admin.
	ErrNotAdmin = errors.New("unauthorized")
)
