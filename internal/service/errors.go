package service

import "errors"

// Client-visible error taxonomy. Handlers translate these to HTTP statuses;
// anything else is an internal failure.
var (
	// ErrConflict is returned when registering an email that is already taken
	ErrConflict = errors.New("email already registered")

	// ErrUnauthorized is returned for bad credentials or an invalid,
	// expired, or unresolvable session token. Bad-password and
	// unknown-email logins are deliberately indistinguishable.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrInvalidRequest is returned for malformed input (email format,
	// password policy, unparseable resolution)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderError wraps any failure during the OAuth redirect,
	// exchange, or profile-fetch sequence
	ErrProviderError = errors.New("oauth provider error")
)
