// Package http exposes the normalized view models over a JSON API.
package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darksuryansh/PricePilot/pkg/health"
	"github.com/darksuryansh/PricePilot/pkg/middleware"
)

// NewRouter builds the HTTP router: view routes behind the standard
// middleware chain, plus health and metrics endpoints outside it.
func NewRouter(h *Handler, healthHandler *health.Handler, allowedOrigins []string, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: allowedOrigins}))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics())

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/view", func(r chi.Router) {
			r.Get("/search", h.Search)
			r.Get("/recent", h.Recent)
			r.Post("/compare", h.Compare)
			r.Post("/product", h.ScrapeProduct)
			r.Route("/product/{id}", func(r chi.Router) {
				r.Get("/", h.Product)
				r.Get("/reviews", h.Reviews)
				r.Get("/review-insights", h.ReviewInsights)
				r.Get("/questions", h.Questions)
				r.Post("/ask", h.Ask)
			})
		})
		r.Post("/chat", h.Chat)
	})

	return r
}
