package errors

import (
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// Format renders an error for terminal output.
// CLIErrors render their full message/details/suggestion block;
// other errors render as a single "Error: ..." line.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var cliErr *CLIError
	if As(err, &cliErr) {
		return "Error: " + cliErr.Error()
	}
	return "Error: " + err.Error()
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize suggestions for your CLI.
type ErrorMessenger interface {
	// AuthErrorMessage returns the message and suggestion for rejected credentials.
	AuthErrorMessage() (message, suggestion string)

	// ChallengeErrorMessage returns the message and suggestion for abandoned MFA challenges.
	ChallengeErrorMessage() (message, suggestion string)

	// ConnectionErrorMessage returns the message and suggestion for connection errors.
	// The serverURL parameter is the URL that failed to connect.
	ConnectionErrorMessage(serverURL string) (message, suggestion string)

	// TLSErrorMessage returns the message and suggestion for TLS/certificate errors.
	TLSErrorMessage(serverURL string) (message, suggestion string)

	// TimeoutErrorMessage returns the message and suggestion for timeout errors.
	TimeoutErrorMessage(serverURL string) (message, suggestion string)

	// MissingServerMessage returns the message and suggestion when no server is configured.
	MissingServerMessage() (message, suggestion string)

	// DeliveryErrorMessage returns the message and suggestion when key delivery fails.
	DeliveryErrorMessage() (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "Authentication was rejected by the PAM service.",
		"Check your username and one-time password, then try again."
}

func (m DefaultMessenger) ChallengeErrorMessage() (string, string) {
	return "The MFA challenge was not completed.",
		"Re-run and enter the one-time password when prompted."
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to PAM server at %s", serverURL),
		"Check that:\n  - The server URL is correct\n  - Your network connection is working\n  - You are connected to the corporate VPN if one is required"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", serverURL),
		"The server may be overloaded or unreachable.\nTry again in a moment."
}

func (m DefaultMessenger) MissingServerMessage() (string, string) {
	return "No PAM server URL is configured.",
		"Set it via the --server flag, the CYBERARK_BASEURL environment variable,\nor the config file (~/.config/pamkey/config.yaml)."
}

func (m DefaultMessenger) DeliveryErrorMessage() (string, string) {
	return "The issued SSH key could not be delivered.",
		"Start an ssh-agent (or check SSH_AUTH_SOCK), or make sure ~/.ssh is writable."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// WrapAuthError wraps authentication-related errors with helpful guidance.
// Non-auth errors pass through unchanged.
func WrapAuthError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	// Abandoned MFA challenge
	if strings.Contains(errStr, "challenge") && strings.Contains(errStr, "abandon") {
		msg, suggestion := messenger.ChallengeErrorMessage()
		return &CLIError{
			Err:        ErrAuthenticationRejected,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Rejected credentials
	if Is(err, ErrAuthenticationRejected) ||
		strings.Contains(errStr, "authentication") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		msg, suggestion := messenger.AuthErrorMessage()
		return &CLIError{
			Err:        ErrAuthenticationRejected,
			Message:    msg,
			Suggestion: suggestion,
			Details:    err.Error(),
		}
	}

	return err
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
// Non-connection errors pass through unchanged.
func WrapConnectionError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	// Check for connection refused
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for TLS/certificate errors
	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := messenger.TLSErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	// Check for timeouts
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// WrapConfigError wraps missing-configuration errors with helpful guidance.
// Other errors pass through unchanged.
func WrapConfigError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	messenger := getMessenger(opts)

	if Is(err, ErrMissingServer) {
		msg, suggestion := messenger.MissingServerMessage()
		return &CLIError{
			Err:        ErrMissingServer,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	if Is(err, ErrMissingInput) {
		return &CLIError{
			Err:     ErrMissingInput,
			Message: err.Error(),
		}
	}

	return err
}

// WrapDeliveryError wraps key delivery failures with helpful guidance.
func WrapDeliveryError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	messenger := getMessenger(opts)
	msg, suggestion := messenger.DeliveryErrorMessage()
	return &CLIError{
		Err:        ErrDeliveryFailed,
		Message:    msg,
		Details:    err.Error(),
		Suggestion: suggestion,
	}
}
