// Package server implements the sift HTTP surface: the search and stats
// API, the embedded front-end, and the request loop that serves them.
package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/starford/sift/internal/index"
	"github.com/starford/sift/internal/metrics"
)

// MaxResults caps the number of hits returned by one search.
const MaxResults = 20

// Searcher is the synchronised view of the index the handlers consult.
// *index.Shared implements it.
type Searcher interface {
	Search(query string) ([]index.Result, error)
	Stats() (index.Stats, error)
}

// Handler holds the API route handlers.
type Handler struct {
	idx     Searcher
	metrics *metrics.Metrics
	marshal func(any) ([]byte, error)
}

// NewHandler creates a new Handler. m may be nil.
func NewHandler(idx Searcher, m *metrics.Metrics) *Handler {
	return &Handler{idx: idx, metrics: m, marshal: json.Marshal}
}

// Search handles POST /api/search. The whole body is the query text.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("read search body failed", slog.String("error", err.Error()))
		serveInternalError(w)
		return
	}
	if !utf8.Valid(body) {
		slog.Debug("search body is not UTF-8", slog.Int("bytes", len(body)))
		serveBadRequest(w, "Body must be a valid UTF-8 string")
		return
	}

	results, err := h.idx.Search(string(body))
	if err != nil {
		slog.Error("search failed", slog.String("error", err.Error()))
		serveInternalError(w)
		return
	}
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	if results == nil {
		results = []index.Result{}
	}

	data, err := h.marshal(results)
	if err != nil {
		slog.Error("encode search results failed", slog.String("error", err.Error()))
		serveInternalError(w)
		return
	}
	h.metrics.ObserveSearch(len(results))
	serveJSON(w, data)
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	st, err := h.idx.Stats()
	if err != nil {
		slog.Error("read index stats failed", slog.String("error", err.Error()))
		serveInternalError(w)
		return
	}
	h.metrics.SetIndexSize(st.Documents, st.Terms)

	data, err := h.marshal(StatsResponse{DocsCount: st.Documents, TermsCount: st.Terms})
	if err != nil {
		slog.Error("encode stats failed", slog.String("error", err.Error()))
		serveInternalError(w)
		return
	}
	serveJSON(w, data)
}
