// Package inference turns form selections into a bank account prediction.
package inference

import (
	"errors"
	"fmt"
	"math"

	"fininclusion/internal/model"
)

// Label texts.
const (
	TextHasAccount = "has a bank account"
	TextNoAccount  = "does not have a bank account"
)

// Classifier is the model contract the pipeline depends on.
type Classifier interface {
	Predict(X [][]float64) ([]int, error)
	PredictProba(X [][]float64) ([][]float64, error)
}

// Result is the outcome of one prediction. It is never stored.
type Result struct {
	Label         int
	Text          string
	Confidence    float64
	Probabilities []float64
	Features      []float64
}

// ConfidencePercent formats the confidence as a percentage.
func (r *Result) ConfidencePercent() string {
	return fmt.Sprintf("%.2f%%", r.Confidence*100)
}

// HasAccount reports whether the prediction is the positive class.
func (r *Result) HasAccount() bool {
	return r.Label == 1
}

// LabelText maps a class label to its display text.
func LabelText(label int) (string, error) {
	switch label {
	case 1:
		return TextHasAccount, nil
	case 0:
		return TextNoAccount, nil
	default:
		return "", fmt.Errorf("unexpected class label %d", label)
	}
}

// Pipeline assembles feature vectors and scores them. It holds only
// read-only dependencies and is safe for concurrent use.
type Pipeline struct {
	enc   Encoder
	model Classifier
}

// NewPipeline creates a pipeline over an encoder bank and a classifier.
func NewPipeline(enc Encoder, m Classifier) *Pipeline {
	return &Pipeline{enc: enc, model: m}
}

// Vector returns the encoded feature vector for in, in schema order.
func (p *Pipeline) Vector(in Input) ([]float64, error) {
	return Assemble(p.enc, in.Values())
}

// Predict scores in.
func (p *Pipeline) Predict(in Input) (*Result, error) {
	return p.PredictValues(in.Values())
}

// PredictValues scores a set of named field values given in any order.
func (p *Pipeline) PredictValues(values []FieldValue) (res *Result, err error) {
	vec, err := Assemble(p.enc, values)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &ModelInvocationError{Op: "predict", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	X := [][]float64{vec}

	labels, err := p.model.Predict(X)
	if err != nil {
		return nil, wrapModelError("predict", err)
	}
	if len(labels) != 1 {
		return nil, &ModelInvocationError{Op: "predict", Err: fmt.Errorf("got %d labels for 1 row", len(labels))}
	}

	probas, err := p.model.PredictProba(X)
	if err != nil {
		return nil, wrapModelError("predict_proba", err)
	}
	if len(probas) != 1 || len(probas[0]) == 0 {
		return nil, &ModelInvocationError{Op: "predict_proba", Err: errors.New("empty probability output")}
	}

	// Every entry is checked so a NaN can never become the maximum.
	var confidence float64
	for _, v := range probas[0] {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, &ModelInvocationError{Op: "predict_proba", Err: fmt.Errorf("probability %v out of range", v)}
		}
		if v > confidence {
			confidence = v
		}
	}

	text, err := LabelText(labels[0])
	if err != nil {
		return nil, &ModelInvocationError{Op: "predict", Err: err}
	}

	return &Result{
		Label:         labels[0],
		Text:          text,
		Confidence:    confidence,
		Probabilities: probas[0],
		Features:      vec,
	}, nil
}

func wrapModelError(op string, err error) error {
	var shape *model.ShapeMismatchError
	if errors.As(err, &shape) {
		return &ShapeMismatchError{Want: shape.Want, Got: shape.Got}
	}
	return &ModelInvocationError{Op: op, Err: err}
}
