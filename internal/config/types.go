// Package config loads server configuration and the per-database connection
// descriptors the gateway serves.
package config

// Config holds server-level settings. Database descriptors are configured
// separately through indexed environment groups (see ParseDescriptors).
type Config struct {
	// Port the HTTP server listens on.
	Port int `koanf:"port"`

	// SessionSecret signs session cookies. Empty disables authentication
	// together with AuthUser/AuthPassword.
	SessionSecret string `koanf:"session_secret"`

	// AuthUser and AuthPassword are the credentials of the single user
	// allowed to log in. Both empty disables the login requirement.
	AuthUser     string `koanf:"auth_user"`
	AuthPassword string `koanf:"auth_password"`

	// EnvFile is an optional dotenv file loaded before the environment is
	// read. Defaults to .env when present.
	EnvFile string `koanf:"env_file"`

	// Watch re-runs a registry reload when the env file changes.
	Watch bool `koanf:"watch"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// ApplyDefaults fills zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
}

// AuthEnabled reports whether login is required.
func (c *Config) AuthEnabled() bool {
	return c.AuthUser != "" && c.AuthPassword != ""
}
