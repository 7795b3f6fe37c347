// Package dialect provides SQL dialect configuration for the gateway.
//
// This package contains the public contract describing how each supported
// database family binds parameters, quotes identifiers, paginates result
// sets, and exposes its catalog. A Dialect is selected once per configured
// database and reused for every statement built against it.
package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, MariaDB).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAt uses @p1, @p2, etc. for parameters (SQL Server).
	PlaceholderAt
)

// ConnParams carries the connection fields a DSN builder needs.
type ConnParams struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string

	// Options contains driver-specific settings merged into the DSN.
	// Option values override any defaults the builder applies.
	Options map[string]string
}

// Dialect describes one SQL dialect supported by the gateway.
type Dialect struct {
	// Name is the canonical dialect identifier ("postgres", "mysql", "mssql").
	Name string

	// Aliases are alternate names that resolve to this dialect
	// (e.g. "postgresql" for postgres, "mariadb" for mysql).
	Aliases []string

	// DriverName is the database/sql driver name to open connections with.
	DriverName string

	// DefaultSchema is the schema assumed when a request names none
	// ("public" for postgres, "dbo" for mssql). Empty means the dialect
	// scopes objects by the connected database instead of a schema.
	DefaultSchema string

	// Placeholder defines the parameter binding style.
	Placeholder PlaceholderStyle

	// MaxOpenConns is the default pool capacity, 0 for the driver default.
	MaxOpenConns int

	// BuildDSN constructs a driver DSN from connection parameters.
	BuildDSN func(p ConnParams) string

	quoteStart string
	quoteEnd   string
	quoteEsc   string

	tablesSQL         string
	columnsSQL        string
	columnsBindSchema bool
}

// FormatPlaceholder returns the placeholder for the n-th parameter (1-based).
func (d *Dialect) FormatPlaceholder(n int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(n)
	case PlaceholderAt:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// QuoteIdentifier quotes a table or column name for safe interpolation.
// Embedded closing quote characters are escaped by doubling.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.quoteEnd, d.quoteEsc)
	return d.quoteStart + escaped + d.quoteEnd
}

// QualifyTable returns a fully quoted table reference. An empty schema falls
// back to the dialect default. Dialects without schema qualification scope by
// the connected database and return the bare quoted table name; any schema
// argument is ignored so the reference always targets the database the
// catalog validated against.
func (d *Dialect) QualifyTable(schema, table string) string {
	if d.DefaultSchema == "" {
		return d.QuoteIdentifier(table)
	}
	if schema == "" {
		schema = d.DefaultSchema
	}
	return d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(table)
}

// Paginate builds the dialect pagination clause for a SELECT and the bound
// arguments in the order the clause expects them. next is the 1-based index
// of the first placeholder the clause may use.
func (d *Dialect) Paginate(limit, offset int64, next int) (string, []any) {
	if d.Placeholder == PlaceholderAt {
		// OFFSET/FETCH requires an ORDER BY; (SELECT NULL) leaves the
		// row order unspecified, matching LIMIT/OFFSET semantics.
		clause := fmt.Sprintf("ORDER BY (SELECT NULL) OFFSET %s ROWS FETCH NEXT %s ROWS ONLY",
			d.FormatPlaceholder(next), d.FormatPlaceholder(next+1))
		return clause, []any{offset, limit}
	}
	clause := fmt.Sprintf("LIMIT %s OFFSET %s",
		d.FormatPlaceholder(next), d.FormatPlaceholder(next+1))
	return clause, []any{limit, offset}
}

// TablesQuery returns the catalog query listing user tables. Result columns
// are aliased to table_name and table_schema across all dialects.
func (d *Dialect) TablesQuery() string {
	return d.tablesSQL
}

// ColumnsQuery returns the catalog query describing a table's columns, and
// whether the query binds a schema parameter ahead of the table name
// parameter. Result columns are aliased to column_name, data_type,
// is_nullable and column_default, ordered by ordinal position.
func (d *Dialect) ColumnsQuery() (sql string, bindsSchema bool) {
	return d.columnsSQL, d.columnsBindSchema
}
