package cyberark

import "errors"

// Client errors.
var (
	// ErrAuthenticationFailed is returned when the PAM service rejects the
	// credentials or the one-time password.
	ErrAuthenticationFailed = errors.New("cyberark authentication failed")

	// ErrChallengeAbandoned is returned when an MFA challenge was issued but
	// no one-time password was provided.
	ErrChallengeAbandoned = errors.New("mfa challenge abandoned")

	// ErrNotAuthenticated is returned when an API call requiring a session
	// is made before a successful Logon.
	ErrNotAuthenticated = errors.New("not authenticated, call Logon first")

	// ErrNoSessionKeys is returned when the vault has no SSH keys cached for
	// the session.
	ErrNoSessionKeys = errors.New("no session SSH keys available")

	// ErrKeysExpired is returned when the returned key material is already
	// past its expiration time.
	ErrKeysExpired = errors.New("session SSH keys already expired")
)
