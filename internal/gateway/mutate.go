package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/rowboat-labs/rowboat/pkg/dialect"
	"github.com/samber/lo"
)

// StatementExecutor is the executor surface the mutator depends on.
type StatementExecutor interface {
	Exec(ctx context.Context, id, stmt string, args ...any) (*Result, error)
}

// SchemaLookup resolves a table's current columns for identifier validation.
type SchemaLookup interface {
	TableSchema(ctx context.Context, id, table, schema string) ([]Column, error)
}

// DialectResolver resolves the dialect of a registered database.
type DialectResolver interface {
	DialectFor(id string) (*dialect.Dialect, error)
}

// Mutator builds parameterized INSERT/UPDATE/DELETE statements for a table.
// Every identifier that ends up in statement text is first validated
// against the table's introspected schema and then dialect-quoted, so
// caller-supplied names can never smuggle SQL into the statement.
type Mutator struct {
	dialects DialectResolver
	schema   SchemaLookup
	exec     StatementExecutor
}

// NewMutator creates a mutator over the given collaborators.
func NewMutator(dialects DialectResolver, schema SchemaLookup, exec StatementExecutor) *Mutator {
	return &Mutator{dialects: dialects, schema: schema, exec: exec}
}

// UpdateRow updates a single row identified by primary key equality.
// Keys in values that are not columns of the table are silently dropped;
// updating with only unknown keys is an error.
func (m *Mutator) UpdateRow(ctx context.Context, id, table, schema, pkCol string, pkVal any, values map[string]any) (*Result, error) {
	if pkCol == "" || pkVal == nil {
		return nil, &BadRequestError{Reason: "primary key name and value are required"}
	}

	d, columns, err := m.resolve(ctx, id, table, schema)
	if err != nil {
		return nil, err
	}
	if err := m.validatePK(columns, pkCol); err != nil {
		return nil, err
	}

	// Iterate in catalog order so the generated statement is deterministic.
	assignable := lo.Filter(columns, func(c Column, _ int) bool {
		_, ok := values[c.Name]
		return ok
	})
	if len(assignable) == 0 {
		return nil, &BadRequestError{Reason: "no known columns to update"}
	}

	sets := make([]string, 0, len(assignable))
	args := make([]any, 0, len(assignable)+1)
	for i, c := range assignable {
		sets = append(sets, fmt.Sprintf("%s = %s", d.QuoteIdentifier(c.Name), d.FormatPlaceholder(i+1)))
		args = append(args, values[c.Name])
	}
	args = append(args, pkVal)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		d.QualifyTable(schema, table),
		strings.Join(sets, ", "),
		d.QuoteIdentifier(pkCol),
		d.FormatPlaceholder(len(assignable)+1))
	return m.exec.Exec(ctx, id, stmt, args...)
}

// InsertRow inserts one row. Keys that are not columns of the table are
// dropped; a payload with no known columns is an error.
func (m *Mutator) InsertRow(ctx context.Context, id, table, schema string, data map[string]any) (*Result, error) {
	if len(data) == 0 {
		return nil, &BadRequestError{Reason: "row data is required"}
	}

	d, columns, err := m.resolve(ctx, id, table, schema)
	if err != nil {
		return nil, err
	}

	insertable := lo.Filter(columns, func(c Column, _ int) bool {
		_, ok := data[c.Name]
		return ok
	})
	if len(insertable) == 0 {
		return nil, &BadRequestError{Reason: "no known columns to insert"}
	}

	names := make([]string, 0, len(insertable))
	placeholders := make([]string, 0, len(insertable))
	args := make([]any, 0, len(insertable))
	for i, c := range insertable {
		names = append(names, d.QuoteIdentifier(c.Name))
		placeholders = append(placeholders, d.FormatPlaceholder(i+1))
		args = append(args, data[c.Name])
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QualifyTable(schema, table),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "))
	return m.exec.Exec(ctx, id, stmt, args...)
}

// DeleteRow deletes a single row by primary key equality.
func (m *Mutator) DeleteRow(ctx context.Context, id, table, schema, pkCol string, pkVal any) (*Result, error) {
	if pkCol == "" || pkVal == nil {
		return nil, &BadRequestError{Reason: "primary key name and value are required"}
	}

	d, columns, err := m.resolve(ctx, id, table, schema)
	if err != nil {
		return nil, err
	}
	if err := m.validatePK(columns, pkCol); err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		d.QualifyTable(schema, table),
		d.QuoteIdentifier(pkCol),
		d.FormatPlaceholder(1))
	return m.exec.Exec(ctx, id, stmt, pkVal)
}

func (m *Mutator) resolve(ctx context.Context, id, table, schema string) (*dialect.Dialect, []Column, error) {
	d, err := m.dialects.DialectFor(id)
	if err != nil {
		return nil, nil, err
	}
	columns, err := m.schema.TableSchema(ctx, id, table, schema)
	if err != nil {
		return nil, nil, err
	}
	if len(columns) == 0 {
		return nil, nil, &BadRequestError{Reason: fmt.Sprintf("unknown table %q", table)}
	}
	return d, columns, nil
}

func (m *Mutator) validatePK(columns []Column, pkCol string) error {
	known := lo.ContainsBy(columns, func(c Column) bool { return c.Name == pkCol })
	if !known {
		return &BadRequestError{Reason: fmt.Sprintf("unknown primary key column %q", pkCol)}
	}
	return nil
}
