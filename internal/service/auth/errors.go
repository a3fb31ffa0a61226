package auth

import "errors"

// Common authentication errors
var (
	// ErrInvalidCredentials indicates the username or password did not match.
	// Callers cannot tell which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingCredentials indicates the request carried no credentials.
	ErrMissingCredentials = errors.New("credentials are missing")
)
