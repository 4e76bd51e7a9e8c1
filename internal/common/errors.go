// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Registration errors. ErrEmailTaken covers the unique-index violation
	// reported by the database on insert.
	ErrEmailTaken     = errors.New("email already registered")
	ErrPreRegNotFound = errors.New("pre-registration not found")
	ErrPreRegUsed     = errors.New("pre-registration already used")

	// Authentication errors. ErrUserNotFound never crosses the service
	// boundary; login failures collapse into ErrInvalidCredentials.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Generic internal failure surfaced to callers in place of raw storage
	// errors. Details are logged, never returned.
	ErrorInternal = errors.New("internal error")
)
