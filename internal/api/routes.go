package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zapponejosh/nakshatra-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /metrics
//	GET  /api/v1/sidereal?datetime=&offset=
//	GET  /api/v1/transit?datetime=&offset=&within=
//	GET  /api/v1/chart?datetime=&offset=&locale=&name=
//	GET  /api/v1/locales
//	GET  /api/v1/locales/{locale}/{kind}/{index}
//	GET  /api/v1/almanac?start=&end=&offset=
//	POST /api/v1/admin/almanac/build   (X-API-Key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path, CodeMethodNotAllowed)
	})

	// ==========================================================================
	// Operational routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// ==========================================================================
	// Public API (rate limited)
	// ==========================================================================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Get("/sidereal", handlers.GetSidereal)
		r.Get("/transit", handlers.GetTransit)
		r.Get("/chart", handlers.GetChart)
		r.Get("/locales", handlers.ListLocales)
		r.Get("/locales/{locale}/{kind}/{index}", handlers.GetLocaleEntry)
		r.Get("/almanac", handlers.GetAlmanac)

		// Admin routes (API key only)
		r.With(AuthMiddleware(cfg, logger)).Post("/admin/almanac/build", handlers.BuildAlmanac)
	})

	return r
}
