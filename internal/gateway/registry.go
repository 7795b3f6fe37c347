package gateway

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/rowboat-labs/rowboat/pkg/dialect"
)

// Status reports whether a registry entry holds a usable connection.
type Status string

const (
	StatusConnected Status = "connected"
	StatusError     Status = "error"
)

// Entry is one registered database: its descriptor, its pooled handle, and
// the outcome of the connection attempt. Entries are owned exclusively by
// the Registry and replaced wholesale on reload.
type Entry struct {
	Descriptor Descriptor
	DB         *sql.DB
	Status     Status
	Err        string
}

// Info is the credential-free projection of an entry returned to clients.
type Info struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Dialect string `json:"dialect"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
}

// Source supplies the current descriptor list, re-read on every reload.
type Source func() ([]Descriptor, error)

// Opener produces a connection handle for a descriptor. Swappable for tests.
type Opener func(ctx context.Context, desc Descriptor, logger *slog.Logger) (*sql.DB, error)

// generation is one immutable snapshot of the registry. Readers always see
// a complete generation; reload builds a new one and swaps the pointer, so
// there is no window where the registry appears empty.
type generation struct {
	order   []string
	entries map[string]*Entry
}

// RegistryConfig holds the dependencies for a Registry.
type RegistryConfig struct {
	Source Source
	Opener Opener // nil uses the default factory
	Logger *slog.Logger
}

// Registry maps logical database ids to live connection entries. It is safe
// for concurrent use; Initialize, Reload and Close serialize among
// themselves while readers proceed lock-free against the current snapshot.
type Registry struct {
	source Source
	opener Opener
	logger *slog.Logger

	mu  sync.Mutex
	gen atomic.Pointer[generation]
}

// NewRegistry creates an empty registry. Call Initialize before serving.
func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opener := cfg.Opener
	if opener == nil {
		opener = Open
	}
	r := &Registry{source: cfg.Source, opener: opener, logger: logger}
	r.gen.Store(&generation{entries: map[string]*Entry{}})
	return r
}

// Initialize reads the descriptor source and connects every descriptor.
// A single descriptor's connect failure never aborts the rest: the entry is
// stored with StatusError and the original message. If the source itself
// fails, the previous generation stays in place and the error is returned.
func (r *Registry) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	descs, err := r.source()
	if err != nil {
		return err
	}

	next := &generation{entries: make(map[string]*Entry, len(descs))}
	for _, desc := range descs {
		entry := &Entry{Descriptor: desc, Status: StatusConnected}
		db, err := r.opener(ctx, desc, r.logger)
		if err != nil {
			entry.Status = StatusError
			entry.Err = err.Error()
			r.logger.Warn("database connection failed",
				slog.String("id", desc.ID),
				slog.String("dialect", desc.Dialect),
				slog.String("error", err.Error()))
		} else {
			entry.DB = db
			r.logger.Info("database connected",
				slog.String("id", desc.ID),
				slog.String("dialect", desc.Dialect))
		}

		if prev, ok := next.entries[desc.ID]; ok {
			// Duplicate id within one configuration: last one wins.
			r.closeEntry(prev)
		} else {
			next.order = append(next.order, desc.ID)
		}
		next.entries[desc.ID] = entry
	}

	old := r.gen.Swap(next)
	r.closeGeneration(old)
	return nil
}

// Reload tears down the current generation and rebuilds it from the source.
// Concurrent readers observe either the old or the new generation, never a
// partially populated one.
func (r *Registry) Reload(ctx context.Context) error {
	return r.Initialize(ctx)
}

// Get returns the entry for a logical database id.
func (r *Registry) Get(id string) (*Entry, error) {
	entry, ok := r.gen.Load().entries[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if entry.Status == StatusError {
		return nil, &NotConnectedError{ID: id, Reason: entry.Err}
	}
	return entry, nil
}

// List returns the credential-free projection of all entries in
// configuration order.
func (r *Registry) List() []Info {
	gen := r.gen.Load()
	return lo.Map(gen.order, func(id string, _ int) Info {
		e := gen.entries[id]
		return Info{
			ID:      e.Descriptor.ID,
			Name:    e.Descriptor.Name,
			Dialect: e.Descriptor.Dialect,
			Status:  e.Status,
			Error:   e.Err,
		}
	})
}

// DialectFor resolves the dialect of a registered database.
func (r *Registry) DialectFor(id string) (*dialect.Dialect, error) {
	entry, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return entry.Descriptor.ResolveDialect()
}

// Close releases every live connection. Used at shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.gen.Swap(&generation{entries: map[string]*Entry{}})
	r.closeGeneration(old)
}

func (r *Registry) closeGeneration(g *generation) {
	if g == nil {
		return
	}
	for _, entry := range g.entries {
		r.closeEntry(entry)
	}
}

// closeEntry closes a handle, swallowing errors: a failed close is not
// actionable by any caller, so it is only logged.
func (r *Registry) closeEntry(entry *Entry) {
	if entry == nil || entry.DB == nil {
		return
	}
	if err := entry.DB.Close(); err != nil {
		r.logger.Warn("failed to close connection",
			slog.String("id", entry.Descriptor.ID),
			slog.String("error", err.Error()))
	}
}
