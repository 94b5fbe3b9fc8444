package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"fininclusion/internal/inference"
	"fininclusion/internal/models"
	"fininclusion/internal/schema"
	"fininclusion/internal/service"
)

// PredictHandler handles predictions via JSON API.
type PredictHandler struct {
	predictor *service.Predictor
}

// NewPredictHandler creates a new API predict handler.
func NewPredictHandler(predictor *service.Predictor) *PredictHandler {
	return &PredictHandler{predictor: predictor}
}

// Predict scores the respondent described by the request body.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	var req models.PredictRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonKindError(c, fiber.StatusBadRequest, inference.KindInvalidInput, "invalid request body")
	}

	res, err := h.predictor.Predict(req.Input())
	if err != nil {
		kind := inference.KindOf(err)
		status := fiber.StatusUnprocessableEntity
		if kind == inference.KindInvalidInput {
			status = fiber.StatusBadRequest
		}
		return jsonKindError(c, status, kind, inference.UserMessage)
	}

	return jsonSuccess(c, models.NewPredictResponse(res, h.predictor.ModelVersion()))
}

// Schema returns the feature order and the form vocabularies.
func (h *PredictHandler) Schema(c fiber.Ctx) error {
	form := h.predictor.Form()

	fields := make([]models.SchemaFieldSummary, 0, len(form.Fields))
	for _, f := range form.Fields {
		summary := models.SchemaFieldSummary{Name: f.Name, Label: f.Label}
		switch {
		case f.IsChoice():
			summary.Kind = "choice"
			summary.Choices = f.Choices
		case f.IsRange():
			lo, hi := f.Min, f.Max
			summary.Kind = "range"
			summary.Min = &lo
			summary.Max = &hi
		default:
			summary.Kind = "categorical"
			summary.Options = f.Options
		}
		fields = append(fields, summary)
	}

	return jsonSuccess(c, models.SchemaResponse{
		FeatureOrder: schema.Order(),
		Fields:       fields,
		ModelVersion: h.predictor.ModelVersion(),
	})
}
