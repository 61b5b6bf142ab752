package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrMissingServer indicates no PAM server URL was configured.
	ErrMissingServer = errors.New("server URL not configured")

	// ErrMissingInput indicates a required interactive input was empty.
	ErrMissingInput = errors.New("required input missing")

	// ErrAuthenticationRejected indicates the PAM service rejected the credentials.
	ErrAuthenticationRejected = errors.New("authentication rejected")

	// ErrConnectionFailed indicates the PAM service is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrDeliveryFailed indicates no delivery sink accepted the issued key.
	ErrDeliveryFailed = errors.New("key delivery failed")
)
