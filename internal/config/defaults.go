package config

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// ConfigFileName is the name of the optional config file.
const ConfigFileName = "rowboat.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "rowboat.yml"

// EnvPrefix is the prefix for server-level environment variables
// (ROWBOAT_PORT, ROWBOAT_SESSION_SECRET, ...).
const EnvPrefix = "ROWBOAT_"

// DatabaseEnvPrefix is the prefix for indexed database descriptor groups
// (DB_1_TYPE, DB_1_HOST, ...).
const DatabaseEnvPrefix = "DB_"
