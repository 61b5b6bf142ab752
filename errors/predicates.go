package errors

import (
	"errors"
	"strings"
)

// Is reports whether any error in err's tree matches target.
// Re-exported so callers don't need both this package and the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsConfigError checks if an error is missing-configuration related.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrMissingServer) || errors.Is(err, ErrMissingInput)
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrAuthenticationRejected) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "authentication") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "401")
}

// IsConnectionError checks if an error is connection-related.
// This includes TLS errors, timeouts, and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	// Network connectivity
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		return true
	}
	// TLS/certificate errors (consistent with WrapConnectionError)
	if strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		return true
	}
	// Timeout errors (consistent with WrapConnectionError)
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	return false
}

// IsDeliveryError checks if an error is key-delivery related.
func IsDeliveryError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrDeliveryFailed)
}
