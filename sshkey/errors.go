package sshkey

import "errors"

// Delivery errors.
var (
	// ErrNoSSHAgent is returned when the SSH agent is not available.
	ErrNoSSHAgent = errors.New("ssh-agent not available")

	// ErrNoKeys is returned when there is no key material to deliver.
	ErrNoKeys = errors.New("no keys to deliver")

	// ErrUnsupportedKey is returned when a private key cannot be parsed
	// for agent loading (e.g. PPK encoded material).
	ErrUnsupportedKey = errors.New("unsupported private key encoding")

	// ErrDeliveryFailed is returned when neither the agent nor the
	// filesystem accepted any key.
	ErrDeliveryFailed = errors.New("key delivery failed")
)
