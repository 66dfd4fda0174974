package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/starford/sift/internal/metrics"
)

// RouterOptions configures the middleware stack around the routes.
type RouterOptions struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Serial handles one request at a time, in arrival order.
	Serial bool
}

// NewRouter maps the five public routes. Every other method/path pair,
// including a known path with the wrong method or with a query string,
// gets the plain 404.
func NewRouter(h *Handler, opts RouterOptions) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logRequests(logger))
	if opts.Metrics != nil {
		r.Use(instrument(opts.Metrics))
	}
	r.Use(recoverPanics(logger))
	if opts.Serial {
		r.Use(serialize())
	}
	r.Use(exactPaths)

	r.Post("/api/search", h.Search)
	r.Get("/api/stats", h.Stats)

	page := serveAsset(indexHTML, contentTypeHTML)
	r.Get("/", page)
	r.Get("/index.html", page)
	r.Get("/index.js", serveAsset(indexJS, contentTypeJS))

	r.NotFound(serveNotFound)
	r.MethodNotAllowed(serveNotFound)

	return r
}
