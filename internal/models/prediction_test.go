package models

import (
	"testing"

	"github.com/google/uuid"

	"fininclusion/internal/inference"
)

func TestPredictRequest_Input(t *testing.T) {
	req := PredictRequest{
		Country:         "Rwanda",
		Year:            2016,
		HouseholdSize:   5,
		AgeOfRespondent: 42,
		JobType:         "Farming and Fishing",
	}

	in := req.Input()
	if in.Country != "Rwanda" || in.Year != 2016 || in.HouseholdSize != 5 || in.AgeOfRespondent != 42 {
		t.Errorf("Input() = %+v", in)
	}
	if in.JobType != "Farming and Fishing" {
		t.Errorf("JobType = %q", in.JobType)
	}
}

func TestNewPredictResponse(t *testing.T) {
	res := &inference.Result{
		Label:         0,
		Text:          inference.TextNoAccount,
		Confidence:    0.8,
		Probabilities: []float64{0.8, 0.2},
		Features:      make([]float64, 11),
	}

	a := NewPredictResponse(res, "v1")
	b := NewPredictResponse(res, "v1")

	if a.PredictionID == uuid.Nil || a.PredictionID == b.PredictionID {
		t.Errorf("prediction ids %s and %s are not unique", a.PredictionID, b.PredictionID)
	}
	if a.ConfidencePercent != "80.00%" {
		t.Errorf("ConfidencePercent = %q, want 80.00%%", a.ConfidencePercent)
	}
	if a.Text != "does not have a bank account" || a.ModelVersion != "v1" {
		t.Errorf("unexpected response: %+v", a)
	}
}
