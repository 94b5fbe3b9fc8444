package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fininclusion/internal/handlers"
	"fininclusion/internal/handlers/api"
	"fininclusion/internal/service"
)

// RegisterRoutes registers all application routes. probe may be nil when no
// external dependency backs readiness.
func (s *Server) RegisterRoutes(predictor *service.Predictor, probe handlers.Pinger, gatherer prometheus.Gatherer) {
	predictHandler := handlers.NewPredictHandler(predictor, s.Cfg)
	probeHandler := handlers.NewProbeHandler(probe)
	apiHandler := api.NewPredictHandler(predictor)

	// Health probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	// Metrics
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Frontend routes
	s.App.Get("/", predictHandler.Index)
	s.App.Post("/predict", predictHandler.Predict)

	// JSON API
	v1 := s.App.Group("/api/v1")
	v1.Post("/predict", apiHandler.Predict)
	v1.Get("/schema", apiHandler.Schema)
}
