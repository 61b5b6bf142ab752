package cyberark

import (
	"strings"
	"time"
)

// IssuedKey is one encoding of the short-lived SSH key issued for a session.
type IssuedKey struct {
	// PrivateKey is the private key material as returned by the vault
	// (PEM, OpenSSH, or PPK encoded depending on Format).
	PrivateKey string

	// PublicKey is the matching public key in authorized_keys format,
	// when the vault supplied one. May be empty.
	PublicKey string

	// Format is the lowercased encoding name, e.g. "pem", "openssh", "ppk".
	Format string

	// Algorithm is the lowercased key algorithm, e.g. "rsa", "ed25519".
	Algorithm string
}

// SessionKeys is the full set of key material issued for one session.
type SessionKeys struct {
	// Keys holds every encoding the vault returned. All entries represent
	// the same logical credential.
	Keys []IssuedKey

	// ExpiresAt is when the credential stops working.
	ExpiresAt time.Time
}

// logonRequest is the body for the RADIUS logon endpoint.
type logonRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Type       string `json:"type"`
	SecureMode string `json:"secureMode"`
}

// sshKeysRequest is the body for the session SSH key cache endpoint.
type sshKeysRequest struct {
	Formats []string `json:"formats,omitempty"`
}

// sshKeysResponse mirrors the vault's cached-key payload.
type sshKeysResponse struct {
	Value []struct {
		PrivateKey string `json:"privateKey"`
		Format     string `json:"format"`
		KeyAlg     string `json:"keyAlg"`
	} `json:"value"`
	PublicKey      string `json:"publicKey"`
	ExpirationTime int64  `json:"expirationTime"`
}

func (r *sshKeysResponse) toSessionKeys() *SessionKeys {
	out := &SessionKeys{
		ExpiresAt: time.Unix(r.ExpirationTime, 0),
	}
	for _, v := range r.Value {
		if v.PrivateKey == "" {
			continue
		}
		out.Keys = append(out.Keys, IssuedKey{
			PrivateKey: v.PrivateKey,
			PublicKey:  r.PublicKey,
			Format:     strings.ToLower(v.Format),
			Algorithm:  strings.ToLower(v.KeyAlg),
		})
	}
	return out
}
