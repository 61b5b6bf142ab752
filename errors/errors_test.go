package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestCLIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *CLIError
		want string
	}{
		{
			name: "message only",
			err:  &CLIError{Message: "something broke"},
			want: "something broke",
		},
		{
			name: "message and suggestion",
			err:  &CLIError{Message: "something broke", Suggestion: "try again"},
			want: "something broke\n\ntry again",
		},
		{
			name: "message, details, and suggestion",
			err: &CLIError{
				Message:    "something broke",
				Details:    "status 500",
				Suggestion: "try again",
			},
			want: "something broke\nstatus 500\n\ntry again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCLIError_Unwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := &CLIError{Err: inner, Message: "outer"}

	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestWrapAuthError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCLI    bool
		wantTarget error
	}{
		{
			name:       "401 response",
			err:        stderrors.New("cyberark API error (401) at /logon: unauthorized"),
			wantCLI:    true,
			wantTarget: ErrAuthenticationRejected,
		},
		{
			name:       "authentication failed",
			err:        stderrors.New("authentication failed: bad OTP"),
			wantCLI:    true,
			wantTarget: ErrAuthenticationRejected,
		},
		{
			name:       "abandoned challenge",
			err:        stderrors.New("mfa challenge abandoned"),
			wantCLI:    true,
			wantTarget: ErrAuthenticationRejected,
		},
		{
			name:    "unrelated error passes through",
			err:     stderrors.New("disk full"),
			wantCLI: false,
		},
		{
			name:    "nil",
			err:     nil,
			wantCLI: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapAuthError(tt.err)
			var cliErr *CLIError
			if stderrors.As(got, &cliErr) != tt.wantCLI {
				t.Fatalf("WrapAuthError() CLIError = %v, want %v", !tt.wantCLI, tt.wantCLI)
			}
			if tt.wantTarget != nil && !stderrors.Is(got, tt.wantTarget) {
				t.Errorf("WrapAuthError() = %v, want wrapping %v", got, tt.wantTarget)
			}
		})
	}
}

func TestWrapConnectionError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantCLI bool
	}{
		{"connection refused", stderrors.New("dial tcp 10.0.0.1:443: connection refused"), true},
		{"tls failure", stderrors.New("x509: certificate signed by unknown authority"), true},
		{"timeout", stderrors.New("context deadline exceeded"), true},
		{"unrelated", stderrors.New("no such file"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapConnectionError(tt.err, "https://pam.example.com")
			var cliErr *CLIError
			if stderrors.As(got, &cliErr) != tt.wantCLI {
				t.Fatalf("WrapConnectionError() CLIError = %v, want %v", !tt.wantCLI, tt.wantCLI)
			}
			if tt.wantCLI && !stderrors.Is(got, ErrConnectionFailed) {
				t.Errorf("WrapConnectionError() = %v, want wrapping ErrConnectionFailed", got)
			}
		})
	}

	t.Run("server URL appears in message", func(t *testing.T) {
		got := WrapConnectionError(stderrors.New("connection refused"), "https://pam.example.com")
		if !strings.Contains(got.Error(), "pam.example.com") {
			t.Errorf("message should name the server, got %q", got.Error())
		}
	})
}

func TestWrapConfigError(t *testing.T) {
	t.Run("missing server", func(t *testing.T) {
		got := WrapConfigError(ErrMissingServer)
		if !stderrors.Is(got, ErrMissingServer) {
			t.Errorf("WrapConfigError() = %v, want wrapping ErrMissingServer", got)
		}
		if !strings.Contains(got.Error(), "CYBERARK_BASEURL") {
			t.Errorf("suggestion should mention CYBERARK_BASEURL, got %q", got.Error())
		}
	})

	t.Run("missing input", func(t *testing.T) {
		got := WrapConfigError(fmt.Errorf("no password given: %w", ErrMissingInput))
		if !stderrors.Is(got, ErrMissingInput) {
			t.Errorf("WrapConfigError() = %v, want wrapping ErrMissingInput", got)
		}
	})

	t.Run("unrelated passes through", func(t *testing.T) {
		orig := stderrors.New("boom")
		if got := WrapConfigError(orig); got != orig {
			t.Errorf("WrapConfigError() = %v, want original", got)
		}
	})
}

func TestWrapDeliveryError(t *testing.T) {
	got := WrapDeliveryError(stderrors.New("mkdir /home/x/.ssh: permission denied"))
	if !stderrors.Is(got, ErrDeliveryFailed) {
		t.Errorf("WrapDeliveryError() = %v, want wrapping ErrDeliveryFailed", got)
	}
	if !strings.Contains(got.Error(), "permission denied") {
		t.Errorf("details should carry the cause, got %q", got.Error())
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(error) bool
		err  error
		want bool
	}{
		{"config: missing server", IsConfigError, ErrMissingServer, true},
		{"config: wrapped missing input", IsConfigError, fmt.Errorf("x: %w", ErrMissingInput), true},
		{"config: nil", IsConfigError, nil, false},
		{"auth: sentinel", IsAuthError, ErrAuthenticationRejected, true},
		{"auth: 401 text", IsAuthError, stderrors.New("got 401"), true},
		{"auth: unrelated", IsAuthError, stderrors.New("boom"), false},
		{"connection: refused", IsConnectionError, stderrors.New("connection refused"), true},
		{"connection: unrelated", IsConnectionError, stderrors.New("boom"), false},
		{"delivery: sentinel", IsDeliveryError, fmt.Errorf("x: %w", ErrDeliveryFailed), true},
		{"delivery: unrelated", IsDeliveryError, stderrors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if got := Format(nil); got != "" {
			t.Errorf("Format(nil) = %q, want empty", got)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if got := Format(stderrors.New("boom")); got != "Error: boom" {
			t.Errorf("Format() = %q", got)
		}
	})

	t.Run("cli error", func(t *testing.T) {
		err := &CLIError{Message: "bad", Suggestion: "fix it"}
		got := Format(err)
		if !strings.HasPrefix(got, "Error: bad") || !strings.Contains(got, "fix it") {
			t.Errorf("Format() = %q", got)
		}
	})
}
