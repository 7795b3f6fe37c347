// Package tables provides the schema browsing and row editing handlers.
package tables

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rowboat-labs/rowboat/internal/gateway"
	"github.com/rowboat-labs/rowboat/internal/web/features/common"
)

// Handlers serves table listings, column metadata, paginated reads, and
// single-row mutations for one registered database.
type Handlers struct {
	introspector *gateway.Introspector
	mutator      *gateway.Mutator
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(introspector *gateway.Introspector, mutator *gateway.Mutator, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handlers{introspector: introspector, mutator: mutator, logger: logger}
}

// Tables lists the user tables of the database.
func (h *Handlers) Tables(w http.ResponseWriter, r *http.Request) {
	dbID := chi.URLParam(r, "dbID")

	tables, err := h.introspector.ListTables(r.Context(), dbID)
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, tables)
}

// Schema returns the table's columns in ordinal order.
func (h *Handlers) Schema(w http.ResponseWriter, r *http.Request) {
	dbID := chi.URLParam(r, "dbID")
	table := chi.URLParam(r, "table")
	schema := r.URL.Query().Get("schema")

	columns, err := h.introspector.TableSchema(r.Context(), dbID, table, schema)
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, columns)
}

// Data returns a page of table rows.
func (h *Handlers) Data(w http.ResponseWriter, r *http.Request) {
	dbID := chi.URLParam(r, "dbID")
	table := chi.URLParam(r, "table")
	schema := r.URL.Query().Get("schema")

	limit, err := queryInt(r, "limit", DefaultLimit)
	if err != nil {
		common.Error(w, err)
		return
	}
	offset, err := queryInt(r, "offset", DefaultOffset)
	if err != nil {
		common.Error(w, err)
		return
	}

	result, err := h.introspector.ReadRows(r.Context(), dbID, table, schema, limit, offset)
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// UpdateRow updates a single row by primary key.
func (h *Handlers) UpdateRow(w http.ResponseWriter, r *http.Request) {
	dbID := chi.URLParam(r, "dbID")
	table := chi.URLParam(r, "table")
	schema := r.URL.Query().Get("schema")

	var req UpdateRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, &gateway.BadRequestError{Reason: "invalid request body"})
		return
	}

	result, err := h.mutator.UpdateRow(r.Context(), dbID, table, schema, req.PrimaryKey, req.PrimaryValue, req.Data)
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// InsertRow inserts a single row.
func (h *Handlers) InsertRow(w http.ResponseWriter, r *http.Request) {
	dbID := chi.URLParam(r, "dbID")
	table := chi.URLParam(r, "table")
	schema := r.URL.Query().Get("schema")

	var req InsertRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, &gateway.BadRequestError{Reason: "invalid request body"})
		return
	}

	result, err := h.mutator.InsertRow(r.Context(), dbID, table, schema, req.Data)
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, result)
}

// DeleteRow deletes a single row by primary key.
func (h *Handlers) DeleteRow(w http.ResponseWriter, r *http.Request) {
	dbID := chi.URLParam(r, "dbID")
	table := chi.URLParam(r, "table")
	schema := r.URL.Query().Get("schema")

	var req DeleteRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.Error(w, &gateway.BadRequestError{Reason: "invalid request body"})
		return
	}

	result, err := h.mutator.DeleteRow(r.Context(), dbID, table, schema, req.PrimaryKey, req.PrimaryValue)
	if err != nil {
		common.Error(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, key string, def int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, &gateway.BadRequestError{Reason: "invalid " + key + " parameter"}
	}
	return v, nil
}
