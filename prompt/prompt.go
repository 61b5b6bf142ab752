package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt errors.
var (
	// ErrEmptyPassword is returned when the user enters an empty password.
	ErrEmptyPassword = errors.New("no password given")

	// ErrEmptyOTP is returned when the user enters an empty one-time password.
	ErrEmptyOTP = errors.New("no one-time password given")
)

// Prompter collects interactive input. The zero value is not usable;
// call New for a stdin/stderr-backed Prompter.
type Prompter struct {
	// In is where line input is read from.
	In io.Reader

	// Out is where prompts are written. Prompts go to stderr by default so
	// that stdout stays clean for scripting.
	Out io.Writer

	// ReadSecret reads a secret without echoing it. When nil, secrets are
	// read via term.ReadPassword if stdin is a terminal, and as a plain
	// line from In otherwise (so input can be piped in tests and scripts).
	ReadSecret func() ([]byte, error)

	reader *bufio.Reader
}

// New returns a Prompter backed by stdin and stderr.
func New() *Prompter {
	return &Prompter{
		In:  os.Stdin,
		Out: os.Stderr,
	}
}

// Server prompts for the PAM server base URL.
// An empty answer is returned as-is; the caller decides whether that is fatal.
func (p *Prompter) Server() (string, error) {
	return p.line("Enter CyberArk PAM base URL (https://server.domain): ")
}

// Username prompts for the username, offering def as the default.
func (p *Prompter) Username(def string) (string, error) {
	name, err := p.line(fmt.Sprintf("Enter your CyberArk username [%s]: ", def))
	if err != nil {
		return "", err
	}
	if name == "" {
		return def, nil
	}
	return name, nil
}

// Password prompts for the user's password without echoing it.
// An empty password is an error.
func (p *Prompter) Password(username string) (string, error) {
	fmt.Fprintf(p.Out, "Enter CyberArk password for %s: ", username)
	secret, err := p.secret()
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(secret) == 0 {
		return "", ErrEmptyPassword
	}
	return string(secret), nil
}

// OTP prompts for a one-time password without echoing it. The message comes
// from the MFA challenge issued by the PAM service.
func (p *Prompter) OTP(message string) (string, error) {
	if message == "" {
		message = "Enter one-time password"
	}
	fmt.Fprintf(p.Out, "%s: ", strings.TrimRight(message, ": "))
	secret, err := p.secret()
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("read one-time password: %w", err)
	}
	if len(secret) == 0 {
		return "", ErrEmptyOTP
	}
	return string(secret), nil
}

func (p *Prompter) line(promptText string) (string, error) {
	fmt.Fprint(p.Out, promptText)
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	text, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (p *Prompter) secret() ([]byte, error) {
	if p.ReadSecret != nil {
		return p.ReadSecret()
	}

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return term.ReadPassword(int(f.Fd()))
	}

	// Not a terminal: fall back to line input so piped runs still work.
	text, err := p.line("")
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}
