package cyberark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	pamhttp "github.com/randalmurphal/pamkey/http"
)

// API endpoints, relative to the base URL.
const (
	logonPath   = "/PasswordVault/API/auth/RADIUS/Logon/"
	sshKeysPath = "/PasswordVault/API/Users/Secret/SSHKeys/Cache/"
	logoffPath  = "/PasswordVault/API/Auth/Logoff"
)

// challengeCode is the vendor error code CyberArk uses to signal that the
// RADIUS server wants a second factor before completing the logon.
const challengeCode = "ITATS542I"

// ChallengeFunc collects a one-time password in response to an MFA challenge.
// The message is the challenge text from the RADIUS server, which may be
// empty.
type ChallengeFunc func(message string) (string, error)

// Config holds client configuration.
type Config struct {
	// BaseURL is the PAM base URL, e.g. "https://pam.example.com".
	BaseURL string

	// Username is the vault username to authenticate as.
	Username string

	// Timeout is the per-request HTTP timeout. Defaults to the shared
	// client default when zero.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client (for tests).
	HTTPClient *nethttp.Client

	// ChallengeFunc is invoked when the service issues an MFA challenge.
	// When nil, a challenge fails the logon.
	ChallengeFunc ChallengeFunc

	// Logger receives debug output. Defaults to slog.Default.
	Logger *slog.Logger
}

// Client talks to the CyberArk PAM REST API on behalf of one user session.
type Client struct {
	cfg    Config
	http   *pamhttp.Client
	logger *slog.Logger

	token string
}

// NewClient creates a client for the given PAM service.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("username is required")
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http(s)", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = pamhttp.DefaultTimeout
		}
		httpClient = &nethttp.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		cfg:    cfg,
		logger: logger,
	}

	// One attempt per request: OTPs are single-use, and the whole run is a
	// single linear exchange anyway.
	c.http = pamhttp.NewClient(pamhttp.ClientConfig{
		Client:      httpClient,
		BaseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		ServiceName: "cyberark",
		MaxRetries:  1,
		BeforeRequest: func(req *nethttp.Request) {
			if c.token != "" {
				req.Header.Set("Authorization", c.token)
			}
		},
	})

	return c, nil
}

// Logon authenticates against the RADIUS logon endpoint and stores the
// session token. If the service answers with an MFA challenge, ChallengeFunc
// is asked for the one-time password and the logon is repeated once with it.
func (c *Client) Logon(ctx context.Context, password string) error {
	token, err := c.logonOnce(ctx, password)
	if err != nil {
		message, isChallenge := challengeMessage(err)
		if !isChallenge {
			return classifyLogonError(err)
		}

		if c.cfg.ChallengeFunc == nil {
			return fmt.Errorf("%w: service requires a one-time password", ErrAuthenticationFailed)
		}

		c.logger.Debug("mfa challenge received", "message", message)
		otp, otpErr := c.cfg.ChallengeFunc(message)
		if otpErr != nil || otp == "" {
			return fmt.Errorf("%w: %v", ErrChallengeAbandoned, otpErr)
		}

		token, err = c.logonOnce(ctx, otp)
		if err != nil {
			return classifyLogonError(err)
		}
	}

	c.token = token
	c.logger.Debug("authenticated",
		"username", c.cfg.Username,
		"token_prefix", tokenPrefix(token),
	)
	if expiry, ok := TokenExpiry(token); ok {
		c.logger.Debug("session token expiry", "expires_at", expiry)
	}
	return nil
}

func (c *Client) logonOnce(ctx context.Context, password string) (string, error) {
	body, err := c.http.PostRaw(ctx, logonPath, logonRequest{
		Username:   c.cfg.Username,
		Password:   password,
		Type:       "radius",
		SecureMode: "true",
	})
	if err != nil {
		return "", err
	}

	// The endpoint returns the token as a quoted JSON string.
	token := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if token == "" {
		return "", errors.New("logon succeeded but returned an empty token")
	}
	return token, nil
}

// SessionSSHKeys retrieves the SSH key material cached for the session.
func (c *Client) SessionSSHKeys(ctx context.Context, formats ...string) (*SessionKeys, error) {
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}

	var resp sshKeysResponse
	if err := c.http.Post(ctx, sshKeysPath, sshKeysRequest{Formats: formats}, &resp); err != nil {
		return nil, fmt.Errorf("fetch session SSH keys: %w", err)
	}

	keys := resp.toSessionKeys()
	if len(keys.Keys) == 0 {
		return nil, ErrNoSessionKeys
	}
	if !keys.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%w (expired %s)", ErrKeysExpired, keys.ExpiresAt.Format(time.RFC3339))
	}

	c.logger.Debug("session SSH keys retrieved",
		"count", len(keys.Keys),
		"expires_at", keys.ExpiresAt,
	)
	return keys, nil
}

// Logoff ends the session. Safe to call when not logged on.
func (c *Client) Logoff(ctx context.Context) error {
	if c.token == "" {
		return nil
	}

	if err := c.http.Post(ctx, logoffPath, struct{}{}, nil); err != nil {
		return fmt.Errorf("logoff: %w", err)
	}
	c.token = ""
	return nil
}

// challengeMessage reports whether err is an MFA challenge and returns the
// challenge text.
func challengeMessage(err error) (string, bool) {
	var apiErr *pamhttp.APIError
	if errors.As(err, &apiErr) && apiErr.Code == challengeCode {
		return apiErr.Message, true
	}
	return "", false
}

// classifyLogonError maps credential rejections to ErrAuthenticationFailed
// and leaves transport errors untouched.
func classifyLogonError(err error) error {
	if pamhttp.IsUnauthorized(err) {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	var apiErr *pamhttp.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
		// CyberArk reports some credential failures as generic 4xx codes.
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	return err
}

func tokenPrefix(token string) string {
	if len(token) <= 10 {
		return token
	}
	return token[:10] + ".."
}
