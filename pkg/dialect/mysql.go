package dialect

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

func init() {
	Register(MySQL())
}

// MySQL returns the MySQL/MariaDB dialect definition.
//
// MySQL has no schema level between the server and its tables; catalog
// queries scope by the connected database instead, so DefaultSchema is
// empty and table references are never schema-qualified.
func MySQL() *Dialect {
	return &Dialect{
		Name:         "mysql",
		Aliases:      []string{"mariadb"},
		DriverName:   "mysql",
		Placeholder:  PlaceholderQuestion,
		MaxOpenConns: 10,
		BuildDSN:     buildMySQLDSN,
		quoteStart:   "`",
		quoteEnd:     "`",
		quoteEsc:     "``",
		tablesSQL: `SELECT table_name, table_schema
FROM information_schema.tables
WHERE table_schema = DATABASE()
ORDER BY table_name`,
		columnsSQL: `SELECT column_name, data_type, is_nullable, column_default
FROM information_schema.columns
WHERE table_schema = DATABASE() AND table_name = ?
ORDER BY ordinal_position`,
	}
}

// buildMySQLDSN constructs a DSN via the driver's own config type so option
// values are encoded correctly.
func buildMySQLDSN(p ConnParams) string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 3306
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", host, port)
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.DBName = p.Database
	if len(p.Options) > 0 {
		cfg.Params = make(map[string]string, len(p.Options))
		for k, v := range p.Options {
			cfg.Params[k] = v
		}
	}
	return cfg.FormatDSN()
}
