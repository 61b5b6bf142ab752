package sshkey

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// ComputeFingerprint computes the SHA256 fingerprint of a key blob.
func ComputeFingerprint(keyBlob []byte) string {
	hash := sha256.Sum256(keyBlob)
	return "SHA256:" + base64.RawStdEncoding.EncodeToString(hash[:])
}

// PublicKeyFingerprint computes the SHA256 fingerprint of a public key in
// authorized_keys format.
func PublicKeyFingerprint(authorizedKey string) (string, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(authorizedKey))
	if err != nil {
		return "", fmt.Errorf("parse public key: %w", err)
	}
	return ComputeFingerprint(pub.Marshal()), nil
}
