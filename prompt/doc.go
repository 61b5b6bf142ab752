// Package prompt collects interactive input from the user.
//
// It handles the three inputs the tool may need at run time:
//   - the PAM server URL, when neither flag, environment, nor config file set it
//   - the username, with the current OS user offered as the default
//   - the password and any MFA one-time password, read without echo
//
// Secrets are read through a non-echoing path (golang.org/x/term when stdin
// is a terminal) and are never written back to the output stream.
//
// The reader, writer, and secret-reading function are injectable so tests can
// drive prompts without a terminal:
//
//	p := &prompt.Prompter{
//	    In:         strings.NewReader("alice\n"),
//	    Out:        io.Discard,
//	    ReadSecret: func() ([]byte, error) { return []byte("otp123"), nil },
//	}
package prompt
