package pamkey

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/randalmurphal/pamkey/cyberark"
	clierrors "github.com/randalmurphal/pamkey/errors"
	"github.com/randalmurphal/pamkey/prompt"
	"github.com/randalmurphal/pamkey/sshkey"
)

// Options configures a run.
type Options struct {
	// Server is the PAM base URL. When empty, the user is prompted.
	Server string

	// Username is the vault username. When empty, the current OS user is
	// offered as the default in an interactive prompt.
	Username string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// FileOnly skips the SSH agent and writes key files directly.
	FileOnly bool

	// KeyFormats restricts which encodings are requested from the vault.
	// Empty means every encoding the vault has cached.
	KeyFormats []string

	// SSHDir overrides the directory for key files. Defaults to ~/.ssh.
	SSHDir string

	// Prompter collects interactive input. Defaults to a stdin/stderr prompter.
	Prompter *prompt.Prompter

	// HTTPClient overrides the underlying HTTP client (for tests).
	HTTPClient *nethttp.Client

	// Logger receives debug output. Defaults to slog.Default.
	Logger *slog.Logger

	// Out is where the run summary is printed. Defaults to stdout.
	Out io.Writer
}

// Report describes a completed run.
type Report struct {
	// Username is the account the session was issued for.
	Username string

	// ExpiresAt is when the issued key stops working.
	ExpiresAt time.Time

	// Delivery describes where the key material ended up.
	Delivery *sshkey.Result
}

// Run authenticates against the PAM service, retrieves the session SSH key
// material, and delivers it to the SSH agent or to key files under the SSH
// directory. The password is solicited interactively exactly once and is
// never stored; key material is never logged.
func Run(ctx context.Context, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	prompter := opts.Prompter
	if prompter == nil {
		prompter = prompt.New()
	}

	server, err := resolveServer(opts.Server, prompter)
	if err != nil {
		return nil, clierrors.WrapConfigError(err)
	}

	username, err := resolveUsername(opts.Username, prompter)
	if err != nil {
		return nil, clierrors.WrapConfigError(err)
	}

	password, err := prompter.Password(username)
	if err != nil {
		return nil, clierrors.WrapConfigError(
			fmt.Errorf("%w: %v", clierrors.ErrMissingInput, err))
	}

	client, err := cyberark.NewClient(cyberark.Config{
		BaseURL:       server,
		Username:      username,
		Timeout:       opts.Timeout,
		HTTPClient:    opts.HTTPClient,
		ChallengeFunc: prompter.OTP,
		Logger:        logger,
	})
	if err != nil {
		return nil, clierrors.WrapConfigError(err)
	}

	if err := client.Logon(ctx, password); err != nil {
		return nil, wrapServiceError(err, server)
	}
	defer func() {
		if err := client.Logoff(ctx); err != nil {
			logger.Debug("logoff failed", "error", err)
		}
	}()

	keys, err := client.SessionSSHKeys(ctx, opts.KeyFormats...)
	if err != nil {
		return nil, wrapServiceError(err, server)
	}

	delivery, err := sshkey.Deliver(toDeliverable(keys), keys.ExpiresAt, sshkey.Options{
		FileOnly: opts.FileOnly,
		File:     sshkey.FileOptions{Dir: opts.SSHDir},
		Comment:  sessionComment(username, server),
		Logger:   logger,
	})
	if err != nil {
		return nil, clierrors.WrapDeliveryError(err)
	}

	printSummary(out, delivery, keys.ExpiresAt)

	return &Report{
		Username:  username,
		ExpiresAt: keys.ExpiresAt,
		Delivery:  delivery,
	}, nil
}

func resolveServer(server string, prompter *prompt.Prompter) (string, error) {
	if server == "" {
		answer, err := prompter.Server()
		if err != nil {
			return "", err
		}
		server = answer
	}
	if server == "" {
		return "", clierrors.ErrMissingServer
	}
	return strings.TrimSuffix(server, "/"), nil
}

func resolveUsername(username string, prompter *prompt.Prompter) (string, error) {
	if username != "" {
		return username, nil
	}

	def := ""
	if current, err := user.Current(); err == nil {
		def = current.Username
	}

	answer, err := prompter.Username(def)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("%w: username", clierrors.ErrMissingInput)
	}
	return answer, nil
}

// wrapServiceError layers the auth and connection wrappers; whichever
// recognizes the error produces the user-facing message, everything else
// passes through.
func wrapServiceError(err error, server string) error {
	return clierrors.WrapConnectionError(clierrors.WrapAuthError(err), server)
}

func toDeliverable(keys *cyberark.SessionKeys) []sshkey.Key {
	out := make([]sshkey.Key, 0, len(keys.Keys))
	for _, k := range keys.Keys {
		out = append(out, sshkey.Key{
			Private:   k.PrivateKey,
			Public:    k.PublicKey,
			Format:    k.Format,
			Algorithm: k.Algorithm,
		})
	}
	return out
}

func sessionComment(username, server string) string {
	host := server
	if parsed, err := url.Parse(server); err == nil && parsed.Host != "" {
		host = parsed.Host
	}
	return fmt.Sprintf("cyberark-session:%s@%s", username, host)
}

func printSummary(out io.Writer, delivery *sshkey.Result, expiresAt time.Time) {
	switch delivery.Method {
	case sshkey.MethodAgent:
		fmt.Fprintf(out, "Loaded %d session key(s) into your SSH agent.\n", delivery.Added)
	case sshkey.MethodFile:
		fmt.Fprintln(out, "Wrote session key file(s):")
		for _, path := range delivery.Paths {
			fmt.Fprintf(out, "  %s\n", path)
		}
	}

	remaining := time.Until(expiresAt).Round(time.Second)
	fmt.Fprintf(out, "Key expires at %s (in %s).\n",
		expiresAt.Local().Format(time.RFC3339), remaining)
}
