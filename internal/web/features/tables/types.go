package tables

// Pagination defaults for the data endpoint.
const (
	DefaultLimit  = 1000
	DefaultOffset = 0
)

// UpdateRowRequest is the body of PUT /{dbId}/tables/{table}/row.
type UpdateRowRequest struct {
	PrimaryKey   string         `json:"primaryKey"`
	PrimaryValue any            `json:"primaryValue"`
	Data         map[string]any `json:"data"`
}

// InsertRowRequest is the body of POST /{dbId}/tables/{table}/row.
type InsertRowRequest struct {
	Data map[string]any `json:"data"`
}

// DeleteRowRequest is the body of DELETE /{dbId}/tables/{table}/row.
type DeleteRowRequest struct {
	PrimaryKey   string `json:"primaryKey"`
	PrimaryValue any    `json:"primaryValue"`
}
