package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/searchlens/searchlens/internal/core"
	"github.com/searchlens/searchlens/internal/core/engine"
	apperrors "github.com/searchlens/searchlens/internal/errors"
)

func newTestServer() *Server {
	return New("127.0.0.1", 0, Deps{
		Dispatcher: &engine.Dispatcher{},
	})
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))

	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/categories", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "METHOD_NOT_ALLOWED", decodeErrorCode(t, rec))
}

func TestListCategories(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp categoriesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Categories, 5)
	require.Equal(t, "Social Media", resp.Categories[0].Name)
	require.Len(t, resp.Categories[0].Platforms, 8)
}

func TestCreateInvestigation(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/investigations",
		`{"subject":"Jane Doe","categories":["Social Media"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var inv core.Investigation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&inv))
	require.Equal(t, "Jane Doe", inv.Subject)
	require.Len(t, inv.Records, 8)
	require.Zero(t, inv.Errors)
	for _, record := range inv.Records {
		require.Equal(t, "Social Media", record.Category)
		require.Contains(t, record.URL, "Jane+Doe")
	}
}

func TestCreateInvestigationDefaultsToAllCategories(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/investigations",
		`{"subject":"Jane Doe"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var inv core.Investigation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&inv))
	require.Len(t, inv.Categories, 5)
	require.Len(t, inv.Records, 29)
}

func TestCreateInvestigationValidation(t *testing.T) {
	srv := newTestServer()

	t.Run("empty subject", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/investigations",
			`{"subject":"   "}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "EMPTY_QUERY", decodeErrorCode(t, rec))
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/investigations",
			`{"subject":"Jane Doe","categories":["Nope"]}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "UNKNOWN_CATEGORY", decodeErrorCode(t, rec))
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/investigations", `{not json`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "INVALID_INPUT", decodeErrorCode(t, rec))
	})
}

func TestHistoryEndpointsRequireStore(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/investigations", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "SERVICE_UNAVAILABLE", decodeErrorCode(t, rec))

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/investigations/inv-1", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSummaryRequiresWikiClient(t *testing.T) {
	srv := newTestServer()

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/summary/Ada_Lovelace", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "SERVICE_UNAVAILABLE", decodeErrorCode(t, rec))
}
