package gateway

import (
	"context"
	"fmt"

	"github.com/rowboat-labs/rowboat/pkg/dialect"
)

// Table identifies a user table in a database.
type Table struct {
	Name   string `json:"name"`
	Schema string `json:"schema,omitempty"`
}

// Column describes one column of a table, in catalog order.
type Column struct {
	Name     string `json:"name"`
	DataType string `json:"dataType"`
	Nullable bool   `json:"nullable"`
	Default  any    `json:"defaultValue,omitempty"`
}

// Introspector reads table lists and column metadata from each dialect's
// catalog views. Nothing is cached; every request hits the catalog so the
// gateway always reflects the live schema.
type Introspector struct {
	registry *Registry
	exec     *Executor
}

// NewIntrospector creates an introspector over the registry and executor.
func NewIntrospector(registry *Registry, exec *Executor) *Introspector {
	return &Introspector{registry: registry, exec: exec}
}

func (i *Introspector) dialectFor(id string) (*dialect.Dialect, error) {
	return i.registry.DialectFor(id)
}

// ListTables returns the user tables visible in the database, ordered by
// (schema, name) where the dialect has schemas and by name otherwise.
func (i *Introspector) ListTables(ctx context.Context, id string) ([]Table, error) {
	d, err := i.dialectFor(id)
	if err != nil {
		return nil, err
	}

	res, err := i.exec.Query(ctx, id, d.TablesQuery())
	if err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(res.Rows))
	for _, row := range res.Rows {
		tables = append(tables, Table{
			Name:   asString(row["table_name"]),
			Schema: asString(row["table_schema"]),
		})
	}
	return tables, nil
}

// TableSchema returns the columns of a table ordered by ordinal position.
// An empty schema defaults to the dialect's default schema; dialects scoped
// by the connected database ignore the schema argument entirely.
func (i *Introspector) TableSchema(ctx context.Context, id, table, schema string) ([]Column, error) {
	d, err := i.dialectFor(id)
	if err != nil {
		return nil, err
	}

	stmt, bindsSchema := d.ColumnsQuery()
	var args []any
	if bindsSchema {
		if schema == "" {
			schema = d.DefaultSchema
		}
		args = []any{schema, table}
	} else {
		args = []any{table}
	}

	res, err := i.exec.Query(ctx, id, stmt, args...)
	if err != nil {
		return nil, err
	}

	columns := make([]Column, 0, len(res.Rows))
	for _, row := range res.Rows {
		columns = append(columns, Column{
			Name:     asString(row["column_name"]),
			DataType: asString(row["data_type"]),
			Nullable: asString(row["is_nullable"]) == "YES",
			Default:  row["column_default"],
		})
	}
	return columns, nil
}

// ReadRows runs a paginated SELECT over a table. The table reference is
// validated against the live catalog before it is interpolated, closing the
// identifier injection hole a raw interpolation would open.
func (i *Introspector) ReadRows(ctx context.Context, id, table, schema string, limit, offset int64) (*Result, error) {
	d, err := i.dialectFor(id)
	if err != nil {
		return nil, err
	}

	columns, err := i.TableSchema(ctx, id, table, schema)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, &BadRequestError{Reason: fmt.Sprintf("unknown table %q", table)}
	}

	clause, args := d.Paginate(limit, offset, 1)
	stmt := fmt.Sprintf("SELECT * FROM %s %s", d.QualifyTable(schema, table), clause)
	return i.exec.Query(ctx, id, stmt, args...)
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
