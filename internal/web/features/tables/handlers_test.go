package tables

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboat-labs/rowboat/internal/gateway"
)

func newTestServer(t *testing.T) (*httptest.Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	registry := gateway.NewRegistry(gateway.RegistryConfig{
		Source: func() ([]gateway.Descriptor, error) {
			return []gateway.Descriptor{{ID: "db1", Name: "Test", Dialect: "postgres"}}, nil
		},
		Opener: func(context.Context, gateway.Descriptor, *slog.Logger) (*sql.DB, error) {
			return db, nil
		},
	})
	require.NoError(t, registry.Initialize(context.Background()))
	t.Cleanup(registry.Close)

	executor := gateway.NewExecutor(registry, nil)
	introspector := gateway.NewIntrospector(registry, executor)
	mutator := gateway.NewMutator(registry, introspector, executor)

	router := chi.NewRouter()
	SetupRoutes(router, introspector, mutator, nil)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mock
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func expectColumns(mock sqlmock.Sqlmock, names ...string) {
	rows := sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "column_default"})
	for _, n := range names {
		rows.AddRow(n, "text", "YES", nil)
	}
	mock.ExpectQuery(`FROM information_schema.columns`).WillReturnRows(rows)
}

func TestTablesEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery(`FROM information_schema.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "table_schema"}).
			AddRow("users", "public"))

	resp := doRequest(t, http.MethodGet, srv.URL+"/db1/tables", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTablesEndpointUnknownDatabase(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/nope/tables", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSchemaEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)
	expectColumns(mock, "id", "val")

	resp := doRequest(t, http.MethodGet, srv.URL+"/db1/tables/users/schema", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDataEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)
	expectColumns(mock, "id", "val")
	mock.ExpectQuery(`SELECT \* FROM "public"\."users" LIMIT \$1 OFFSET \$2`).
		WithArgs(int64(2), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "val"}).
			AddRow(1, "a").
			AddRow(2, "b"))

	resp := doRequest(t, http.MethodGet, srv.URL+"/db1/tables/users/data?limit=2&offset=0", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDataEndpointDefaultsPagination(t *testing.T) {
	srv, mock := newTestServer(t)
	expectColumns(mock, "id")
	mock.ExpectQuery(`SELECT \* FROM "public"\."users"`).
		WithArgs(int64(DefaultLimit), int64(DefaultOffset)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := doRequest(t, http.MethodGet, srv.URL+"/db1/tables/users/data", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDataEndpointRejectsBadPagination(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, query := range []string{"?limit=abc", "?limit=-1", "?offset=x", "?offset=-5"} {
		resp := doRequest(t, http.MethodGet, srv.URL+"/db1/tables/users/data"+query, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestUpdateRowEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)
	expectColumns(mock, "id", "val")
	mock.ExpectExec(`UPDATE "public"\."users" SET "val" = \$1 WHERE "id" = \$2`).
		WithArgs("x", float64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"primaryKey":"id","primaryValue":7,"data":{"val":"x"}}`
	resp := doRequest(t, http.MethodPut, srv.URL+"/db1/tables/users/row", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRowEndpointMissingPrimaryKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPut, srv.URL+"/db1/tables/users/row", `{"data":{"val":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateRowEndpointInvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPut, srv.URL+"/db1/tables/users/row", `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInsertRowEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)
	expectColumns(mock, "id", "val")
	mock.ExpectExec(`INSERT INTO "public"\."users" \("val"\) VALUES \(\$1\)`).
		WithArgs("x").
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp := doRequest(t, http.MethodPost, srv.URL+"/db1/tables/users/row", `{"data":{"val":"x"}}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRowEndpointEmptyData(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/db1/tables/users/row", `{"data":{}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteRowEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)
	expectColumns(mock, "id", "val")
	mock.ExpectExec(`DELETE FROM "public"\."users" WHERE "id" = \$1`).
		WithArgs(float64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"primaryKey":"id","primaryValue":7}`
	resp := doRequest(t, http.MethodDelete, srv.URL+"/db1/tables/users/row", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRowEndpointMissingPrimaryKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(t, http.MethodDelete, srv.URL+"/db1/tables/users/row", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
