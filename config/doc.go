// Package config provides layered configuration resolution for the CLI.
//
// Configuration is merged with clear precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables (CYBERARK_BASEURL, CYBERARK_USERNAME, ...)
//  3. User config file (~/.config/pamkey/config.yaml)
//  4. Built-in defaults (lowest priority)
//
// # Basic Usage
//
// Create a resolver with the application's settings:
//
//	resolver := config.NewResolver(config.ResolverConfig{
//	    EnvPrefix: "CYBERARK_",
//	    ConfigDir: "pamkey",
//	    Defaults: map[string]string{
//	        "timeout": "30s",
//	    },
//	})
//
//	cfg := resolver.ResolveWithFlags(map[string]string{"baseurl": serverFlag})
//	fmt.Println(cfg.Get("baseurl"))
//	fmt.Println(cfg.Source("baseurl")) // "flag", "env", "file", or "default"
//
// # Environment Variables
//
// Environment variables are detected using the configured prefix:
//
//	# With EnvPrefix: "CYBERARK_"
//	CYBERARK_BASEURL=https://pam.example.com  # sets "baseurl"
//	CYBERARK_USERNAME=alice                   # sets "username"
//
// # Config Sources
//
// Each resolved value tracks where it came from:
//   - "default": Built-in default value
//   - "file": ~/.config/<app>/config.yaml
//   - "env": Environment variable
//   - "flag": Command-line flag
//
// The one-time password is deliberately not a configuration key: it is only
// ever collected interactively and never read from flags, environment, or
// files.
package config
