package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/DeNovo-Designer/internal/interfaces/http/handlers"
	"github.com/turtacn/DeNovo-Designer/internal/interfaces/http/middleware"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the route tree.
type RouterConfig struct {
	// Handlers
	AnalysisHandler  *handlers.AnalysisHandler
	CandidateHandler *handlers.CandidateHandler
	HealthHandler    *handlers.HealthHandler

	// Middleware
	CORSMiddleware    *middleware.CORSMiddleware
	LoggingMiddleware *middleware.LoggingMiddleware
	RateLimiter       *middleware.RateLimiter

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string
}

// NewRouter builds the complete route tree.  Nil handlers leave their routes
// unregistered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Handler)
	}
	r.Use(middleware.Metrics(cfg.Metrics))

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(cfg.RateLimiter.Handler)
		}
		registerAnalysisRoutes(api, cfg.AnalysisHandler)
		registerCandidateRoutes(api, cfg.CandidateHandler)
	})

	return r
}

// registerAnalysisRoutes mounts the run endpoints under /analyses plus the
// demo and option listings.
func registerAnalysisRoutes(r chi.Router, h *handlers.AnalysisHandler) {
	if h == nil {
		return
	}
	r.Get("/demo", h.Demo)
	r.Get("/options", h.Options)

	r.Route("/analyses", func(ar chi.Router) {
		ar.Post("/", h.Submit)

		ar.Route("/{runID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Get("/docking", h.Docking)
			item.Get("/druggability", h.Druggability)
			item.Get("/structure", h.Structure)

			// Downloads
			item.Get("/export.csv", h.Download(appAnalysis.FormatCSV))
			item.Get("/export.xlsx", h.Download(appAnalysis.FormatXLSX))
			item.Get("/report.txt", h.Download(appAnalysis.FormatReport))
			item.Get("/complex.pdb", h.Download(appAnalysis.FormatPDB))
		})
	})
}

func registerCandidateRoutes(r chi.Router, h *handlers.CandidateHandler) {
	if h == nil {
		return
	}
	r.Get("/classify", h.Classify)
	r.Route("/candidates", func(cr chi.Router) {
		cr.Get("/", h.List)
		cr.Get("/top", h.Top)
		cr.Get("/{id}", h.Get)
	})
}

//Personal.AI order the ending
