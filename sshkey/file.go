package sshkey

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultFilePrefix is the filename prefix for delivered session keys.
const DefaultFilePrefix = "id_cyberark_session"

// suffixAlphabet keeps generated filename suffixes lowercase and shell-safe.
const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// FileOptions configures filesystem delivery.
type FileOptions struct {
	// Dir is the target directory. Defaults to ~/.ssh.
	Dir string

	// Prefix is the filename prefix. Defaults to DefaultFilePrefix.
	Prefix string
}

func (o FileOptions) dir() (string, error) {
	if o.Dir != "" {
		return o.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory (check HOME/USERPROFILE): %w", err)
	}
	return filepath.Join(home, ".ssh"), nil
}

func (o FileOptions) prefix() string {
	if o.Prefix != "" {
		return o.Prefix
	}
	return DefaultFilePrefix
}

// WriteKeyFile writes a private key under the SSH directory with owner-only
// permissions, creating the directory if absent. Filenames carry the key's
// format, algorithm, and a random suffix, and files are opened exclusively,
// so existing key material is never overwritten. The public key, when
// present, is written alongside as "<name>.pub". Returns the private key
// path.
func WriteKeyFile(key Key, opts FileOptions) (string, error) {
	dir, err := opts.dir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create SSH directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s", opts.prefix(), sanitize(key.Format), sanitize(key.Algorithm))

	// Retry on the off chance a suffix collides with an existing file.
	for i := 0; i < 3; i++ {
		suffix, err := nanoid.Generate(suffixAlphabet, 8)
		if err != nil {
			return "", fmt.Errorf("generate filename suffix: %w", err)
		}
		path := filepath.Join(dir, name+"_"+suffix)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", fmt.Errorf("create key file: %w", err)
		}

		if _, err := f.WriteString(key.Private); err != nil {
			f.Close()
			return "", fmt.Errorf("write key file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close key file: %w", err)
		}

		if key.Public != "" {
			if err := writePublicKeyFile(path+".pub", key.Public); err != nil {
				return "", err
			}
		}

		return path, nil
	}

	return "", fmt.Errorf("create key file: could not find an unused filename under %s", dir)
}

func writePublicKeyFile(path, publicKey string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create public key file: %w", err)
	}
	if !strings.HasSuffix(publicKey, "\n") {
		publicKey += "\n"
	}
	if _, err := f.WriteString(publicKey); err != nil {
		f.Close()
		return fmt.Errorf("write public key file: %w", err)
	}
	return f.Close()
}

// sanitize maps a payload-supplied name component to a safe filename chunk.
func sanitize(s string) string {
	if s == "" {
		return "key"
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "key"
	}
	return sb.String()
}
