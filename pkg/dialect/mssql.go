package dialect

import (
	"fmt"
	"net/url"

	_ "github.com/microsoft/go-mssqldb" // sqlserver database/sql driver
)

func init() {
	Register(MSSQL())
}

// MSSQL returns the SQL Server dialect definition.
//
// Statements are always sent with @pN bound parameters. Connections default
// to encrypt=true unless the descriptor options say otherwise, and
// TrustServerCertificate is forced on: the gateway favors connecting to
// servers with self-signed certificates over TLS chain validation.
func MSSQL() *Dialect {
	return &Dialect{
		Name:          "mssql",
		Aliases:       []string{"sqlserver"},
		DriverName:    "sqlserver",
		DefaultSchema: "dbo",
		Placeholder:   PlaceholderAt,
		BuildDSN:      buildMSSQLDSN,
		quoteStart:    "[",
		quoteEnd:      "]",
		quoteEsc:      "]]",
		tablesSQL: `SELECT TABLE_NAME AS table_name, TABLE_SCHEMA AS table_schema
FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_TYPE = 'BASE TABLE'
ORDER BY TABLE_SCHEMA, TABLE_NAME`,
		columnsSQL: `SELECT COLUMN_NAME AS column_name, DATA_TYPE AS data_type, IS_NULLABLE AS is_nullable, COLUMN_DEFAULT AS column_default
FROM INFORMATION_SCHEMA.COLUMNS
WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2
ORDER BY ORDINAL_POSITION`,
		columnsBindSchema: true,
	}
}

// buildMSSQLDSN constructs a sqlserver:// URL for go-mssqldb.
func buildMSSQLDSN(p ConnParams) string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 1433
	}

	q := url.Values{}
	if p.Database != "" {
		q.Set("database", p.Database)
	}
	q.Set("encrypt", "true")
	for k, v := range p.Options {
		q.Set(k, v)
	}
	q.Set("TrustServerCertificate", "true")

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     fmt.Sprintf("%s:%d", host, port),
		RawQuery: q.Encode(),
	}
	if p.User != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	return u.String()
}
