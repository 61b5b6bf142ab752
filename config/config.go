package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResolverConfig configures the layered config resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to key names for environment variable lookup.
	// For example, with EnvPrefix "CYBERARK_", key "baseurl" maps to
	// CYBERARK_BASEURL.
	EnvPrefix string

	// ConfigDir is the name of the directory under ~/.config/
	// where the config file is stored.
	// For example, "pamkey" results in ~/.config/pamkey/config.yaml.
	ConfigDir string

	// ConfigFile is the filename for the config file.
	// Defaults to "config.yaml" if empty.
	ConfigFile string

	// Defaults provides the default values for configuration keys.
	Defaults map[string]string

	// ValidKeys lists keys that can be set in the config file.
	// If nil, all keys are valid. Keys absent from this list are
	// silently ignored, which is how secrets are kept out of files.
	ValidKeys []string

	// ErrWriter is where warnings are written.
	// Defaults to os.Stderr if nil.
	ErrWriter io.Writer
}

func (c ResolverConfig) configFile() string {
	if c.ConfigFile != "" {
		return c.ConfigFile
	}
	return "config.yaml"
}

// Resolver handles layered configuration resolution.
type Resolver struct {
	config   ResolverConfig
	filePath string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a new configuration resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	resolver := &Resolver{
		config: cfg,
	}

	// Set default error writer
	if cfg.ErrWriter == nil {
		resolver.config.ErrWriter = os.Stderr
	}

	// Set config file path
	if cfg.ConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			resolver.filePath = filepath.Join(
				home, ".config", cfg.ConfigDir, cfg.configFile(),
			)
		}
	}

	return resolver
}

// NewResolverWithPath creates a resolver with an explicit config file path.
// This is useful for testing or when the path is known ahead of time.
func NewResolverWithPath(cfg ResolverConfig, filePath string) *Resolver {
	resolver := &Resolver{
		config:   cfg,
		filePath: filePath,
	}

	// Set default error writer
	if cfg.ErrWriter == nil {
		resolver.config.ErrWriter = os.Stderr
	}

	return resolver
}

// warn adds a warning and optionally prints it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.config.ErrWriter != nil {
		fmt.Fprintf(r.config.ErrWriter, "Warning: %s\n", msg)
	}
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// Keys returns all configuration keys.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > file > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	// 1. Apply defaults (lowest priority)
	r.applyDefaults(cfg)

	// 2. Apply config file
	r.applyFile(cfg)

	// 3. Apply environment variables
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies flag overrides.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()

	for key, value := range flags {
		if value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceFlag
		}
	}

	return cfg
}

func (r *Resolver) applyDefaults(cfg *Resolved) {
	for key, value := range r.config.Defaults {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}
}

func (r *Resolver) applyFile(cfg *Resolved) {
	if r.filePath == "" {
		return
	}

	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return // File doesn't exist - not an error
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", r.filePath, err))
		return
	}

	for key, value := range parsed {
		// Skip if not a valid key (when validation is enabled)
		if len(r.config.ValidKeys) > 0 && !contains(r.config.ValidKeys, key) {
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.values[key] = strVal
			cfg.sources[key] = SourceFile
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	if r.config.EnvPrefix == "" {
		return
	}

	// Check environment for each known key
	allKeys := make(map[string]bool)
	for k := range r.config.Defaults {
		allKeys[k] = true
	}
	for k := range cfg.values {
		allKeys[k] = true
	}
	for _, k := range r.config.ValidKeys {
		allKeys[k] = true
	}

	for key := range allKeys {
		envKey := r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if value := os.Getenv(envKey); value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceEnv
		}
	}
}

// FilePath returns the path to the config file.
func (r *Resolver) FilePath() string {
	return r.filePath
}

// Helper functions

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
