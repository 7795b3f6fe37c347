package dialect

import (
	"fmt"
	"sort"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

func init() {
	Register(Postgres())
}

// Postgres returns the PostgreSQL dialect definition.
func Postgres() *Dialect {
	return &Dialect{
		Name:          "postgres",
		Aliases:       []string{"postgresql", "pg"},
		DriverName:    "pgx",
		DefaultSchema: "public",
		Placeholder:   PlaceholderDollar,
		BuildDSN:      buildPostgresDSN,
		quoteStart:    `"`,
		quoteEnd:      `"`,
		quoteEsc:      `""`,
		tablesSQL: `SELECT table_name, table_schema
FROM information_schema.tables
WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY table_schema, table_name`,
		columnsSQL: `SELECT column_name, data_type, is_nullable, column_default
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`,
		columnsBindSchema: true,
	}
}

// buildPostgresDSN constructs a key=value connection string for pgx.
func buildPostgresDSN(p ConnParams) string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}

	settings := map[string]string{
		"host":    host,
		"port":    fmt.Sprintf("%d", port),
		"sslmode": "disable",
	}
	if p.Database != "" {
		settings["dbname"] = p.Database
	}
	if p.User != "" {
		settings["user"] = p.User
	}
	if p.Password != "" {
		settings["password"] = p.Password
	}
	for k, v := range p.Options {
		settings[k] = v
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	dsn := ""
	for _, k := range keys {
		if dsn != "" {
			dsn += " "
		}
		dsn += fmt.Sprintf("%s=%s", k, settings[k])
	}
	return dsn
}
