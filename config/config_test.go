package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestResolve_Defaults(t *testing.T) {
	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		Defaults: map[string]string{
			"baseurl": "",
			"timeout": "30s",
		},
	}, "")

	cfg := resolver.Resolve()

	if got := cfg.Get("timeout"); got != "30s" {
		t.Errorf("Get(timeout) = %q, want 30s", got)
	}
	if got := cfg.Source("timeout"); got != SourceDefault {
		t.Errorf("Source(timeout) = %q, want default", got)
	}
}

func TestResolve_FileOverridesDefault(t *testing.T) {
	path := writeConfigFile(t, "baseurl: https://pam.example.com\ntimeout: 10s\n")

	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		Defaults:  map[string]string{"timeout": "30s"},
	}, path)

	cfg := resolver.Resolve()

	if got := cfg.Get("baseurl"); got != "https://pam.example.com" {
		t.Errorf("Get(baseurl) = %q", got)
	}
	if got := cfg.Source("baseurl"); got != SourceFile {
		t.Errorf("Source(baseurl) = %q, want file", got)
	}
	if got := cfg.Get("timeout"); got != "10s" {
		t.Errorf("Get(timeout) = %q, want 10s", got)
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "baseurl: https://file.example.com\n")
	t.Setenv("PAMKEYTEST_BASEURL", "https://env.example.com")

	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		Defaults:  map[string]string{"baseurl": ""},
	}, path)

	cfg := resolver.Resolve()

	value, source := cfg.GetWithSource("baseurl")
	if value != "https://env.example.com" {
		t.Errorf("Get(baseurl) = %q, want env value", value)
	}
	if source != SourceEnv {
		t.Errorf("Source(baseurl) = %q, want env", source)
	}
}

func TestResolve_EnvForValidKeyWithoutDefault(t *testing.T) {
	t.Setenv("PAMKEYTEST_USERNAME", "alice")

	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		ValidKeys: []string{"baseurl", "username"},
	}, "")

	cfg := resolver.Resolve()

	if got := cfg.Get("username"); got != "alice" {
		t.Errorf("Get(username) = %q, want alice", got)
	}
}

func TestResolveWithFlags(t *testing.T) {
	t.Setenv("PAMKEYTEST_BASEURL", "https://env.example.com")

	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		Defaults:  map[string]string{"baseurl": ""},
	}, "")

	t.Run("flag wins over env", func(t *testing.T) {
		cfg := resolver.ResolveWithFlags(map[string]string{
			"baseurl": "https://flag.example.com",
		})
		value, source := cfg.GetWithSource("baseurl")
		if value != "https://flag.example.com" {
			t.Errorf("Get(baseurl) = %q, want flag value", value)
		}
		if source != SourceFlag {
			t.Errorf("Source(baseurl) = %q, want flag", source)
		}
	})

	t.Run("empty flag falls through", func(t *testing.T) {
		cfg := resolver.ResolveWithFlags(map[string]string{"baseurl": ""})
		if got := cfg.Source("baseurl"); got != SourceEnv {
			t.Errorf("Source(baseurl) = %q, want env", got)
		}
	})
}

func TestResolve_InvalidKeysIgnored(t *testing.T) {
	// A password smuggled into the config file must not resolve.
	path := writeConfigFile(t, "baseurl: https://pam.example.com\npassword: hunter2\n")

	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		ValidKeys: []string{"baseurl", "username", "timeout"},
	}, path)

	cfg := resolver.Resolve()

	if got := cfg.Get("password"); got != "" {
		t.Errorf("Get(password) = %q, want empty", got)
	}
	if got := cfg.Get("baseurl"); got != "https://pam.example.com" {
		t.Errorf("Get(baseurl) = %q", got)
	}
}

func TestResolve_MalformedFileWarns(t *testing.T) {
	path := writeConfigFile(t, ":\n  this is: [not valid\n")

	var warnings bytes.Buffer
	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		Defaults:  map[string]string{"timeout": "30s"},
		ErrWriter: &warnings,
	}, path)

	cfg := resolver.Resolve()

	if len(resolver.Warnings) == 0 {
		t.Error("expected a warning for malformed config file")
	}
	if !strings.Contains(warnings.String(), "could not parse") {
		t.Errorf("warning output = %q", warnings.String())
	}
	// Resolution still succeeds with defaults.
	if got := cfg.Get("timeout"); got != "30s" {
		t.Errorf("Get(timeout) = %q, want 30s", got)
	}
}

func TestResolve_MissingFileIsNotAnError(t *testing.T) {
	resolver := NewResolverWithPath(ResolverConfig{
		EnvPrefix: "PAMKEYTEST_",
		Defaults:  map[string]string{"timeout": "30s"},
	}, filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	cfg := resolver.Resolve()

	if len(resolver.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", resolver.Warnings)
	}
	if got := cfg.Get("timeout"); got != "30s" {
		t.Errorf("Get(timeout) = %q, want 30s", got)
	}
}
