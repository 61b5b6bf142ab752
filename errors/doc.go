// Package errors provides CLI error patterns with user-friendly messaging.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Sentinel errors for common scenarios:
//   - ErrMissingServer: No PAM server URL was configured
//   - ErrMissingInput: A required interactive input was empty
//   - ErrAuthenticationRejected: The PAM service rejected the credentials
//   - ErrConnectionFailed: The PAM service is unreachable
//   - ErrDeliveryFailed: Neither the SSH agent nor the filesystem accepted the key
//
// Example usage:
//
//	// Wrap an auth error with default messages
//	if err := client.Logon(ctx, password); err != nil {
//	    return errors.WrapAuthError(err)
//	}
//
//	// Check error categories
//	if errors.IsConfigError(err) {
//	    // Handle missing configuration
//	}
//
//	// Render for terminal output
//	fmt.Fprintln(os.Stderr, errors.Format(err))
package errors
