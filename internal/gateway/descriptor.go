// Package gateway implements the multi-dialect database gateway: the
// connection registry, the dialect-aware query executor, schema
// introspection, and parameterized row mutations.
package gateway

import "github.com/rowboat-labs/rowboat/pkg/dialect"

// Descriptor holds the connection configuration for one logical database.
type Descriptor struct {
	// ID is the logical identifier requests address the database by.
	// Unique within one registry generation; duplicates overwrite.
	ID string

	// Name is a display name for the UI, defaults to ID.
	Name string

	// Dialect is the canonical dialect name ("postgres", "mysql", "mssql").
	// Alias forms from configuration are normalized before storage.
	Dialect string

	Host     string
	Port     int
	User     string
	Password string
	Database string

	// Options holds driver-specific settings merged into the connection
	// configuration. Options override pool and encryption defaults.
	Options map[string]string
}

// ResolveDialect returns the dialect definition for the descriptor.
func (d Descriptor) ResolveDialect() (*dialect.Dialect, error) {
	dl, ok := dialect.Lookup(d.Dialect)
	if !ok {
		return nil, &UnsupportedDialectError{Dialect: d.Dialect, Available: dialect.Names()}
	}
	return dl, nil
}

// connParams maps the descriptor onto the dialect DSN builder input.
func (d Descriptor) connParams() dialect.ConnParams {
	return dialect.ConnParams{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Database: d.Database,
		Options:  d.Options,
	}
}
