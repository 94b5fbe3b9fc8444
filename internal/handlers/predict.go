package handlers

import (
	"github.com/gofiber/fiber/v3"

	"fininclusion/internal/config"
	"fininclusion/internal/inference"
	"fininclusion/internal/schema"
	"fininclusion/internal/service"
)

// PredictHandler serves the prediction form.
type PredictHandler struct {
	predictor *service.Predictor
	branding  Branding
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(predictor *service.Predictor, cfg *config.Config) *PredictHandler {
	return &PredictHandler{
		predictor: predictor,
		branding:  NewBranding(cfg, predictor.ModelVersion()),
	}
}

// Index renders the form.
func (h *PredictHandler) Index(c fiber.Ctx) error {
	return c.Render("index", h.branding.Apply(fiber.Map{
		"Title":  "Predict",
		"Fields": h.predictor.Form().Fields,
	}))
}

// Predict runs a prediction for the submitted form and renders the result
// partial. Every failure renders the same diagnostic message.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	res, err := h.predictor.PredictForm(func(key string) string {
		return c.FormValue(key)
	})
	if err != nil {
		return htmxError(c, inference.UserMessage)
	}

	return c.Render("partials/result", fiber.Map{
		"Result":       res,
		"FeatureOrder": schema.Order(),
		"ModelVersion": h.branding.ModelVersion,
	}, "")
}
