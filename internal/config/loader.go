package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Load loads server configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// A dotenv file is loaded into the process environment first so both the
// ROWBOAT_* settings and the DB_<n>_* descriptor groups may live in it.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	loadDotenv(flags)

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"port":    DefaultPort,
		"watch":   false,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file (optional)
	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment variables (ROWBOAT_ prefix)
	// Transform: ROWBOAT_SESSION_SECRET -> session_secret
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ApplyDefaults()

	if cfg.AuthEnabled() && cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session_secret is required when auth_user and auth_password are set")
	}

	return &cfg, nil
}

// loadDotenv loads the env file named by --env-file (or .env when present)
// into the process environment. A missing default file is not an error.
func loadDotenv(flags *pflag.FlagSet) {
	envFile := ""
	if flags != nil {
		if v, _ := flags.GetString("env-file"); v != "" && flags.Changed("env-file") {
			envFile = v
		}
	}
	if envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
}

// findConfigFile finds the config file in the working directory.
// Returns empty string if not found.
func findConfigFile() string {
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}
