// Package common defines shared constants and sentinel errors used across
// the Geniable CLI. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Authentication errors reported by the identity provider.
	ErrNotAuthorized    = errors.New("invalid username or password")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserNotConfirmed = errors.New("user account not confirmed")

	// ErrInvalidPassword is returned when a new password does not meet the
	// provider's password policy. It is user-correctable, unlike the
	// authentication errors above.
	ErrInvalidPassword = errors.New("password does not meet policy requirements")

	// Protocol errors (malformed or unexpected provider responses).
	ErrSRPProtocol         = errors.New("srp protocol violation")
	ErrUnexpectedChallenge = errors.New("unexpected challenge")
	ErrMalformedResponse   = errors.New("malformed provider response")

	// ErrNotAuthenticated is returned by callers that need a valid session
	// when no usable credentials are stored.
	ErrNotAuthenticated = errors.New("not authenticated")
)
