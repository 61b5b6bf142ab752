// Command pamkey authenticates against a CyberArk PAM vault with MFA and
// installs the short-lived session SSH key into the local SSH agent, falling
// back to key files under ~/.ssh.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/pamkey"
	"github.com/randalmurphal/pamkey/config"
	clierrors "github.com/randalmurphal/pamkey/errors"
)

var (
	flagServer     string
	flagUsername   string
	flagFileOnly   bool
	flagTimeout    time.Duration
	flagKeyFormats string
)

var rootCmd = &cobra.Command{
	Use:   "pamkey",
	Short: "Retrieve a short-lived SSH key from CyberArk PAM",
	Long: `pamkey logs on to a CyberArk PAM vault (RADIUS with MFA), retrieves the
short-lived SSH key issued for the session, and loads it into your SSH agent.
When no agent is reachable the key is written under ~/.ssh instead.

The server URL, username, timeout, and key formats can come from flags, the
CYBERARK_BASEURL / CYBERARK_USERNAME / CYBERARK_TIMEOUT / CYBERARK_KEY_FORMATS
environment variables, or ~/.config/pamkey/config.yaml. Anything still
missing is prompted for. The password is always prompted and never read from
configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagValues := map[string]string{
			"baseurl":     flagServer,
			"username":    flagUsername,
			"key_formats": flagKeyFormats,
		}
		// The timeout flag always has a value; only a flag the user set
		// should override the env/file layers.
		if cmd.Flags().Changed("timeout") {
			flagValues["timeout"] = flagTimeout.String()
		}

		resolved := config.NewResolver(config.ResolverConfig{
			EnvPrefix: "CYBERARK_",
			ConfigDir: "pamkey",
			Defaults:  map[string]string{"timeout": "30s"},
			ValidKeys: []string{"baseurl", "username", "timeout", "key_formats"},
		}).ResolveWithFlags(flagValues)

		for _, key := range resolved.Keys() {
			value, source := resolved.GetWithSource(key)
			slog.Debug("config resolved", "key", key, "value", value, "source", source)
		}

		opts, err := optionsFromConfig(resolved, flagFileOnly)
		if err != nil {
			return err
		}

		_, err = pamkey.Run(cmd.Context(), opts)
		return err
	},
}

// optionsFromConfig maps the resolved configuration onto run options.
func optionsFromConfig(resolved *config.Resolved, fileOnly bool) (pamkey.Options, error) {
	timeout, err := time.ParseDuration(resolved.Get("timeout"))
	if err != nil {
		return pamkey.Options{}, fmt.Errorf("invalid timeout %q: %w", resolved.Get("timeout"), err)
	}

	return pamkey.Options{
		Server:     resolved.Get("baseurl"),
		Username:   resolved.Get("username"),
		Timeout:    timeout,
		FileOnly:   fileOnly,
		KeyFormats: splitFormats(resolved.Get("key_formats")),
	}, nil
}

// splitFormats parses a comma-separated key format list ("pem,openssh").
// Empty means every encoding the vault has cached.
func splitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

func init() {
	rootCmd.Flags().StringVarP(&flagServer, "server", "s", "", "PAM base URL (e.g. https://pam.example.com)")
	rootCmd.Flags().StringVarP(&flagUsername, "username", "u", "", "vault username")
	rootCmd.Flags().BoolVar(&flagFileOnly, "file-only", false, "skip the SSH agent and write key files directly")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	rootCmd.Flags().StringVar(&flagKeyFormats, "key-formats", "", "comma-separated key encodings to request (e.g. pem,openssh); empty requests all")
}

func main() {
	level := slog.LevelWarn
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, clierrors.Format(err))
		os.Exit(1)
	}
}
