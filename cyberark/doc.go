// Package cyberark is a client for the CyberArk PAM REST API, covering the
// small surface this tool needs: RADIUS logon with an MFA challenge step,
// retrieval of the SSH keys cached for the authenticated session, and logoff.
//
// # Authentication
//
// Logon posts the username and password to the RADIUS logon endpoint. When
// the service answers with an MFA challenge (vendor error code ITATS542I),
// the configured ChallengeFunc is invoked to collect the one-time password
// and the logon is repeated once with it. Deployments using single-step OTP
// (password and token concatenated) never trigger the challenge.
//
//	client, err := cyberark.NewClient(cyberark.Config{
//	    BaseURL:       "https://pam.example.com",
//	    Username:      "alice",
//	    ChallengeFunc: prompter.OTP,
//	})
//	if err := client.Logon(ctx, password); err != nil {
//	    ...
//	}
//
// # Session SSH keys
//
// SessionSSHKeys returns the short-lived key material the vault has cached
// for the session, usually the same key in several encodings (PEM, OpenSSH,
// PPK), together with its expiration time:
//
//	keys, err := client.SessionSSHKeys(ctx)
//	for _, k := range keys.Keys {
//	    fmt.Println(k.Algorithm, k.Format)
//	}
//	fmt.Println("expires", keys.ExpiresAt)
//
// The session token is held in memory for the lifetime of the client and is
// never logged beyond a short prefix at debug level. Private key material is
// never logged at all.
package cyberark
