package models

import (
	"github.com/google/uuid"

	"fininclusion/internal/inference"
)

// PredictRequest is the JSON body of a prediction request.
type PredictRequest struct {
	Country              string `json:"country"`
	Year                 int    `json:"year"`
	LocationType         string `json:"location_type"`
	CellphoneAccess      string `json:"cellphone_access"`
	HouseholdSize        int    `json:"household_size"`
	AgeOfRespondent      int    `json:"age_of_respondent"`
	GenderOfRespondent   string `json:"gender_of_respondent"`
	RelationshipWithHead string `json:"relationship_with_head"`
	EducationLevel       string `json:"education_level"`
	JobType              string `json:"job_type"`
	MaritalStatus        string `json:"marital_status"`
}

// Input converts the request into pipeline input.
func (r PredictRequest) Input() inference.Input {
	return inference.Input{
		Country:              r.Country,
		Year:                 r.Year,
		LocationType:         r.LocationType,
		CellphoneAccess:      r.CellphoneAccess,
		HouseholdSize:        r.HouseholdSize,
		AgeOfRespondent:      r.AgeOfRespondent,
		GenderOfRespondent:   r.GenderOfRespondent,
		RelationshipWithHead: r.RelationshipWithHead,
		EducationLevel:       r.EducationLevel,
		JobType:              r.JobType,
		MaritalStatus:        r.MaritalStatus,
	}
}

// PredictResponse contains the result of one prediction.
type PredictResponse struct {
	PredictionID      uuid.UUID `json:"prediction_id"`
	Label             int       `json:"label"`
	Text              string    `json:"text"`
	Confidence        float64   `json:"confidence"`
	ConfidencePercent string    `json:"confidence_percent"`
	Probabilities     []float64 `json:"probabilities"`
	Features          []float64 `json:"features"`
	ModelVersion      string    `json:"model_version"`
}

// NewPredictResponse builds the API response for a pipeline result.
func NewPredictResponse(res *inference.Result, modelVersion string) PredictResponse {
	return PredictResponse{
		PredictionID:      uuid.New(),
		Label:             res.Label,
		Text:              res.Text,
		Confidence:        res.Confidence,
		ConfidencePercent: res.ConfidencePercent(),
		Probabilities:     res.Probabilities,
		Features:          res.Features,
		ModelVersion:      modelVersion,
	}
}

// SchemaResponse describes the feature layout and form vocabularies.
type SchemaResponse struct {
	FeatureOrder []string             `json:"feature_order"`
	Fields       []SchemaFieldSummary `json:"fields"`
	ModelVersion string               `json:"model_version"`
}

// SchemaFieldSummary describes one form field.
type SchemaFieldSummary struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
	Choices []int    `json:"choices,omitempty"`
	Min     *int     `json:"min,omitempty"`
	Max     *int     `json:"max,omitempty"`
}
