package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rowboat-labs/rowboat/internal/gateway"
	"github.com/rowboat-labs/rowboat/pkg/dialect"
)

// LookupFunc reads one environment variable, os.LookupEnv in production.
type LookupFunc func(key string) (string, bool)

// EnvSource returns a registry source that re-reads the process environment
// on every call, so a reload picks up descriptor changes.
func EnvSource() gateway.Source {
	return func() ([]gateway.Descriptor, error) {
		return ParseDescriptors(os.LookupEnv), nil
	}
}

// FileSource returns a registry source that re-reads a dotenv file on every
// call and parses descriptors from its contents alone. Reading the file
// directly, rather than merging it into the process environment, means
// groups removed from the file disappear on the next reload.
func FileSource(envFile string) gateway.Source {
	return func() ([]gateway.Descriptor, error) {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return ParseDescriptors(func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		}), nil
	}
}

// ParseDescriptors reads indexed environment groups DB_<n>_{TYPE,ID,NAME,
// HOST,PORT,USER,PASSWORD,DATABASE,OPTIONS} starting at index 1 and stops at
// the first index with no TYPE. Descriptors are returned in index order.
//
// No uniqueness validation happens here; a duplicate id is resolved by the
// registry, where the later entry overwrites the earlier one.
func ParseDescriptors(lookup LookupFunc) []gateway.Descriptor {
	var descriptors []gateway.Descriptor
	for n := 1; ; n++ {
		typ, ok := lookup(descriptorKey(n, "TYPE"))
		if !ok || typ == "" {
			break
		}

		id := envOrDefault(lookup, n, "ID", fmt.Sprintf("db_%d", n))
		desc := gateway.Descriptor{
			ID:       id,
			Name:     envOrDefault(lookup, n, "NAME", id),
			Dialect:  dialect.Normalize(typ),
			Host:     envOrDefault(lookup, n, "HOST", ""),
			User:     envOrDefault(lookup, n, "USER", ""),
			Password: envOrDefault(lookup, n, "PASSWORD", ""),
			Database: envOrDefault(lookup, n, "DATABASE", ""),
			Options:  parseOptions(envOrDefault(lookup, n, "OPTIONS", "")),
		}
		if raw, ok := lookup(descriptorKey(n, "PORT")); ok {
			if port, err := strconv.Atoi(raw); err == nil {
				desc.Port = port
			}
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors
}

func descriptorKey(n int, field string) string {
	return fmt.Sprintf("%s%d_%s", DatabaseEnvPrefix, n, field)
}

func envOrDefault(lookup LookupFunc, n int, field, def string) string {
	if v, ok := lookup(descriptorKey(n, field)); ok && v != "" {
		return v
	}
	return def
}

// parseOptions decodes the OPTIONS field, a JSON object of driver settings.
// Malformed JSON yields empty options rather than failing the whole parse.
// Non-string values are stringified for the driver DSN.
func parseOptions(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}
	options := make(map[string]string, len(decoded))
	for k, v := range decoded {
		if s, ok := v.(string); ok {
			options[k] = s
			continue
		}
		options[k] = fmt.Sprint(v)
	}
	return options
}
