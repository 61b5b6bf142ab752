// Package pamkey retrieves short-lived SSH keys from a CyberArk PAM vault
// and delivers them to the local SSH agent or to key files under ~/.ssh.
//
// The package is organized into subpackages by domain:
//
//   - cyberark: PAM REST API client (RADIUS logon, session SSH key cache)
//   - sshkey: key delivery to the SSH agent and the filesystem
//   - prompt: interactive credential collection
//   - config: layered configuration (defaults, file, environment, flags)
//   - http: shared JSON HTTP client with retries
//   - errors: user-facing error wrapping for the CLI
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/randalmurphal/pamkey"
//	)
//
//	report, err := pamkey.Run(context.Background(), pamkey.Options{
//	    Server: "https://pam.example.com",
//	})
//	if err != nil {
//	    // errors.Format(err) renders a terminal-friendly message
//	}
//	fmt.Println(report.ExpiresAt)
//
// Run drives the whole exchange: it resolves the server and username,
// prompts for the password (and a one-time password if the service issues
// an MFA challenge), fetches the session key material, and installs it.
// Delivery is strictly additive; existing agent keys and key files are
// never removed.
package pamkey
