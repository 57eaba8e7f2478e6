package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/lehigh-university-libraries/gutenstats/internal/models"
)

const (
	defaultSearchLimit = 20
	defaultRandom      = 5
	defaultSimilar     = 5
	defaultTrendTop    = 10
	maxPageSize        = 1000
)

// Handler serves the dashboard JSON API
type Handler struct {
	service *Service
}

// NewHandler creates a handler for service
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers every dashboard endpoint on mux
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/info", h.HandleInfo)
	mux.HandleFunc("GET /api/books", h.HandleSearch)
	mux.HandleFunc("GET /api/books/random", h.HandleRandom)
	mux.HandleFunc("GET /api/books/{id}", h.HandleBook)
	mux.HandleFunc("GET /api/books/{id}/similar", h.HandleSimilar)
	mux.HandleFunc("GET /api/years", h.HandleYears)
	mux.HandleFunc("GET /api/trends/{year}/words", h.HandleWordTrend)
	mux.HandleFunc("GET /api/trends/{year}/subjects", h.HandleSubjectTrend)
	mux.HandleFunc("POST /api/reload", h.HandleReload)
	mux.HandleFunc("GET /healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.service.Info())
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.intParam(w, r, "limit", defaultSearchLimit)
	if !ok {
		return
	}
	h.writeJSON(w, h.service.Search(r.URL.Query().Get("q"), limit))
}

func (h *Handler) HandleRandom(w http.ResponseWriter, r *http.Request) {
	n, ok := h.intParam(w, r, "n", defaultRandom)
	if !ok {
		return
	}
	h.writeJSON(w, h.service.Random(n))
}

func (h *Handler) HandleBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.Book(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, book)
}

func (h *Handler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	k, ok := h.intParam(w, r, "k", defaultSimilar)
	if !ok {
		return
	}

	recs, err := h.service.Similar(r.PathValue("id"), k)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, recs)
}

func (h *Handler) HandleYears(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.service.Years())
}

func (h *Handler) HandleWordTrend(w http.ResponseWriter, r *http.Request) {
	h.handleTrend(w, r, h.service.WordTrend)
}

func (h *Handler) HandleSubjectTrend(w http.ResponseWriter, r *http.Request) {
	h.handleTrend(w, r, h.service.SubjectTrend)
}

func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Reload(r.Context())
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, info)
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request, trend func(year, n int) ([]models.WordCount, error)) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		h.writeError(w, fmt.Sprintf("Invalid year %q", r.PathValue("year")), http.StatusBadRequest)
		return
	}

	n, ok := h.intParam(w, r, "n", defaultTrendTop)
	if !ok {
		return
	}

	entries, err := trend(year, n)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, entries)
}

// intParam reads a positive integer query parameter, writing a 400 when it is malformed
func (h *Handler) intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > maxPageSize {
		h.writeError(w, fmt.Sprintf("Invalid %s: must be an integer between 1 and %d", name, maxPageSize), http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Debug(message, "code", code)
	}
	http.Error(w, message, code)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		h.writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.writeError(w, err.Error(), http.StatusInternalServerError)
}
