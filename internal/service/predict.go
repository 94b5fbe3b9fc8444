// Package service runs predictions on behalf of the HTTP handlers and CLI.
package service

import (
	"log/slog"
	"time"

	"fininclusion/internal/config"
	"fininclusion/internal/inference"
	"fininclusion/internal/metrics"
	"fininclusion/internal/validation"
)

// Predictor validates user input, runs the pipeline and records the outcome.
type Predictor struct {
	pipeline     *inference.Pipeline
	validator    *validation.Validator
	form         *config.FormConfig
	recorder     *metrics.Recorder
	modelVersion string
}

// NewPredictor creates a predictor. recorder may be nil.
func NewPredictor(
	pipeline *inference.Pipeline,
	form *config.FormConfig,
	recorder *metrics.Recorder,
	modelVersion string,
) *Predictor {
	return &Predictor{
		pipeline:     pipeline,
		validator:    validation.New(form),
		form:         form,
		recorder:     recorder,
		modelVersion: modelVersion,
	}
}

// Form returns the form configuration inputs are validated against.
func (p *Predictor) Form() *config.FormConfig {
	return p.form
}

// ModelVersion returns the version of the loaded model artifact.
func (p *Predictor) ModelVersion() string {
	return p.modelVersion
}

// PredictForm parses form values keyed by feature name and predicts.
func (p *Predictor) PredictForm(get func(key string) string) (*inference.Result, error) {
	in, err := p.validator.ParseForm(get)
	if err != nil {
		return nil, p.fail(err)
	}
	return p.run(in)
}

// Predict validates in and predicts.
func (p *Predictor) Predict(in inference.Input) (*inference.Result, error) {
	if err := p.validator.Validate(in); err != nil {
		return nil, p.fail(err)
	}
	return p.run(in)
}

func (p *Predictor) run(in inference.Input) (*inference.Result, error) {
	start := time.Now()
	res, err := p.pipeline.Predict(in)
	if err != nil {
		return nil, p.fail(err)
	}
	p.recorder.ObservePrediction(res.Label, time.Since(start))
	return res, nil
}

// fail records err under its kind and returns it unchanged.
func (p *Predictor) fail(err error) error {
	kind := inference.KindOf(err)
	p.recorder.ObserveError(string(kind))
	if kind == inference.KindInvalidInput {
		slog.Debug("rejected prediction input", "kind", kind, "error", err)
	} else {
		slog.Warn("prediction failed", "kind", kind, "error", err)
	}
	return err
}
