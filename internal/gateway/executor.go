package gateway

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
)

// Result is the normalized shape of a statement's outcome across dialects.
type Result struct {
	// Rows holds one map per returned row, keyed by column name.
	Rows []map[string]any `json:"rows"`

	// RowCount is the number of returned rows for queries, or the
	// driver-reported affected-row count for mutations.
	RowCount int `json:"rowCount"`
}

// Executor runs parameterized statements against registry entries and
// normalizes the result shape. All statements go through the entry's pooled
// handle regardless of dialect.
type Executor struct {
	registry *Registry
	logger   *slog.Logger
}

// NewExecutor creates an executor over the given registry.
func NewExecutor(registry *Registry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{registry: registry, logger: logger}
}

// Query executes a row-returning statement against the database identified
// by id. Registry lookup failures propagate unchanged; driver failures are
// wrapped as QueryFailedError with the original message preserved.
func (e *Executor) Query(ctx context.Context, id, stmt string, args ...any) (*Result, error) {
	entry, err := e.registry.Get(id)
	if err != nil {
		return nil, err
	}

	rows, err := entry.DB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, e.failed(id, err)
	}
	defer func() { _ = rows.Close() }()

	mapped, err := rowsToMaps(rows)
	if err != nil {
		return nil, e.failed(id, err)
	}
	return &Result{Rows: mapped, RowCount: len(mapped)}, nil
}

// Exec executes a mutation statement and reports the affected-row count.
func (e *Executor) Exec(ctx context.Context, id, stmt string, args ...any) (*Result, error) {
	entry, err := e.registry.Get(id)
	if err != nil {
		return nil, err
	}

	res, err := entry.DB.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, e.failed(id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report affected rows; treat as zero.
		affected = 0
	}
	return &Result{Rows: []map[string]any{}, RowCount: int(affected)}, nil
}

func (e *Executor) failed(id string, err error) error {
	e.logger.Error("statement failed",
		slog.String("id", id),
		slog.String("error", err.Error()))
	return &QueryFailedError{ID: id, Err: err}
}

// rowsToMaps drains a result set into column-keyed maps. Byte slices are
// converted to strings so results serialize as text rather than base64.
func rowsToMaps(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	mapped := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		mapped = append(mapped, row)
	}
	return mapped, rows.Err()
}
