package server

import (
	"net/http"

	"github.com/cloo-solutions/digest/internal/api"
	"github.com/cloo-solutions/digest/internal/api/handlers"
	"github.com/cloo-solutions/digest/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// APIPrefix is the path the content routes are mounted under.
const APIPrefix = "/api/v1"

type RouterConfig struct {
	ContentHandler *handlers.ContentHandler
	Logger         *zap.Logger
	// Registry receives request metrics and backs /metrics. Nil disables both.
	Registry *prometheus.Registry
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Sentry)
	r.Use(middleware.AccessLog(log))
	if cfg.Registry != nil {
		r.Use(middleware.NewMetrics(cfg.Registry).Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := cfg.ContentHandler
	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/sources", h.ListSources)

		r.Route("/content", func(r chi.Router) {
			r.Get("/", h.ListContent)
			r.Get("/similar", h.SimilarContent)
			r.Get("/search", h.Search)
			r.Get("/search/benchmark", h.SearchBenchmark)
			r.Get("/{id}", h.GetContent)
		})
	})

	return r
}
