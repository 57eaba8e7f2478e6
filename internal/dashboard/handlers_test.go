package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	service, _ := newTestService(t, 16)
	mux := http.NewServeMux()
	NewHandler(service).Routes(mux)
	return mux
}

func TestHandlerStatusCodes(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "healthcheck", method: http.MethodGet, target: "/healthcheck", status: http.StatusOK},
		{name: "info", method: http.MethodGet, target: "/api/info", status: http.StatusOK},
		{name: "search", method: http.MethodGet, target: "/api/books?q=austen", status: http.StatusOK},
		{name: "search bad limit", method: http.MethodGet, target: "/api/books?limit=abc", status: http.StatusBadRequest},
		{name: "random", method: http.MethodGet, target: "/api/books/random?n=2", status: http.StatusOK},
		{name: "random zero", method: http.MethodGet, target: "/api/books/random?n=0", status: http.StatusBadRequest},
		{name: "book", method: http.MethodGet, target: "/api/books/84", status: http.StatusOK},
		{name: "missing book", method: http.MethodGet, target: "/api/books/nope", status: http.StatusNotFound},
		{name: "similar", method: http.MethodGet, target: "/api/books/84/similar?k=2", status: http.StatusOK},
		{name: "similar bad k", method: http.MethodGet, target: "/api/books/84/similar?k=-1", status: http.StatusBadRequest},
		{name: "similar missing book", method: http.MethodGet, target: "/api/books/nope/similar", status: http.StatusNotFound},
		{name: "years", method: http.MethodGet, target: "/api/years", status: http.StatusOK},
		{name: "word trend", method: http.MethodGet, target: "/api/trends/1993/words", status: http.StatusOK},
		{name: "subject trend", method: http.MethodGet, target: "/api/trends/1995/subjects?n=1", status: http.StatusOK},
		{name: "bad year", method: http.MethodGet, target: "/api/trends/nineteen/words", status: http.StatusBadRequest},
		{name: "unknown year", method: http.MethodGet, target: "/api/trends/1800/words", status: http.StatusNotFound},
		{name: "reload", method: http.MethodPost, target: "/api/reload", status: http.StatusOK},
		{name: "reload wrong method", method: http.MethodGet, target: "/api/reload", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleSimilarBody(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/books/84/similar?k=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var recs []models.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "42324", recs[0].BookID)
	assert.InDelta(t, 1.0, recs[0].Score, 0.01)
}

func TestHandleWordTrendBody(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/trends/1993/words?n=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"word":"would","count":200}]`, strings.TrimSpace(rec.Body.String()))
}
