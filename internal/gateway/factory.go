package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

// optPoolSize is the descriptor option overriding the pool capacity.
// It is consumed here and never forwarded to the driver DSN.
const optPoolSize = "pool_size"

// Open establishes a pooled connection handle for the descriptor. All three
// dialects get a database/sql pool; the handle is verified with a ping so a
// registry entry is only marked connected when the database is reachable.
func Open(ctx context.Context, desc Descriptor, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dl, err := desc.ResolveDialect()
	if err != nil {
		return nil, err
	}

	params := desc.connParams()
	maxOpen := dl.MaxOpenConns
	if raw, ok := params.Options[optPoolSize]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s option %q: %w", optPoolSize, raw, err)
		}
		maxOpen = n
		params.Options = withoutOption(params.Options, optPoolSize)
	}

	logger.Debug("opening connection",
		slog.String("id", desc.ID),
		slog.String("dialect", dl.Name),
		slog.String("host", desc.Host),
		slog.String("database", desc.Database))

	db, err := sql.Open(dl.DriverName, dl.BuildDSN(params))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dl.Name, err)
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dl.Name, err)
	}
	return db, nil
}

func withoutOption(opts map[string]string, key string) map[string]string {
	filtered := make(map[string]string, len(opts))
	for k, v := range opts {
		if k != key {
			filtered[k] = v
		}
	}
	return filtered
}
