package sshkey

import (
	"fmt"
	"log/slog"
	"time"
)

// Method is the sink that accepted the key material.
type Method string

// Delivery methods.
const (
	// MethodAgent means keys were loaded into a running SSH agent.
	MethodAgent Method = "agent"

	// MethodFile means keys were written under the SSH directory.
	MethodFile Method = "file"
)

// Result describes a successful delivery.
type Result struct {
	// Method is the sink that accepted the keys.
	Method Method

	// Added is the number of keys loaded into the agent (agent delivery).
	Added int

	// Paths are the private key files written (file delivery).
	Paths []string
}

// Options configures delivery.
type Options struct {
	// FileOnly skips the agent and writes files directly.
	FileOnly bool

	// File configures the filesystem fallback.
	File FileOptions

	// Comment is attached to keys loaded into the agent.
	Comment string

	// Logger receives debug output. Defaults to slog.Default.
	Logger *slog.Logger
}

// Deliver installs the issued key material into the SSH agent, falling back
// to key files under the SSH directory when no agent is reachable or the
// agent accepts none of the offered encodings. Delivery is strictly
// additive: nothing pre-existing is removed or overwritten.
func Deliver(keys []Key, expiresAt time.Time, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if len(keys) == 0 {
		return nil, ErrNoKeys
	}

	if fp, err := PublicKeyFingerprint(keys[0].Public); err == nil {
		logger.Debug("delivering session key", "fingerprint", fp, "expires_at", expiresAt)
	}

	if !opts.FileOnly {
		result, err := deliverToAgent(keys, expiresAt, opts.Comment, logger)
		if err == nil {
			return result, nil
		}
		logger.Debug("agent delivery unavailable, writing key files", "error", err)
	}

	return deliverToFiles(keys, opts.File, logger)
}

func deliverToAgent(keys []Key, expiresAt time.Time, comment string, logger *slog.Logger) (*Result, error) {
	conn, err := Agent()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	added := 0
	for _, key := range keys {
		if err := AddToAgent(conn, key, expiresAt, comment); err != nil {
			logger.Debug("agent rejected key",
				"format", key.Format,
				"algorithm", key.Algorithm,
				"error", err,
			)
			continue
		}
		added++
	}

	if added == 0 {
		return nil, fmt.Errorf("agent accepted none of %d key(s)", len(keys))
	}

	return &Result{Method: MethodAgent, Added: added}, nil
}

func deliverToFiles(keys []Key, opts FileOptions, logger *slog.Logger) (*Result, error) {
	var paths []string
	var lastErr error

	for _, key := range keys {
		path, err := WriteKeyFile(key, opts)
		if err != nil {
			lastErr = err
			logger.Debug("write key file failed",
				"format", key.Format,
				"algorithm", key.Algorithm,
				"error", err,
			)
			continue
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, lastErr)
		}
		return nil, ErrDeliveryFailed
	}

	return &Result{Method: MethodFile, Paths: paths}, nil
}
