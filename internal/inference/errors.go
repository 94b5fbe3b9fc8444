package inference

import (
	"errors"
	"fmt"

	"fininclusion/internal/artifact"
	"fininclusion/internal/encoder"
	"fininclusion/internal/model"
)

// UserMessage is the single diagnostic shown to end users for any failure.
const UserMessage = "Prediction failed. The inputs could not be preprocessed into the format the model was trained on. Check your selections and try again."

// Kind classifies inference failures.
type Kind string

const (
	KindLoad            Kind = "load"
	KindUnknownCategory Kind = "unknown_category"
	KindShapeMismatch   Kind = "shape_mismatch"
	KindModelInvocation Kind = "model_invocation"
	KindInvalidInput    Kind = "invalid_input"
	KindUnknown         Kind = "unknown"
)

// ShapeMismatchError is returned when a feature vector cannot be laid out in
// schema order, or the model rejects its width.
type ShapeMismatchError struct {
	Want   int
	Got    int
	Field  string
	Reason string
}

func (e *ShapeMismatchError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("feature vector shape mismatch: %s %s", e.Reason, e.Field)
	}
	return fmt.Sprintf("feature vector shape mismatch: got %d values, want %d", e.Got, e.Want)
}

// ModelInvocationError is returned when the classifier fails on a vector of
// the right shape.
type ModelInvocationError struct {
	Op  string
	Err error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model %s failed: %v", e.Op, e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

// InvalidInputError is returned when a form value fails validation before
// reaching the pipeline.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// KindOf returns the kind of err, looking through wrapped errors.
func KindOf(err error) Kind {
	var (
		loadErr     *artifact.LoadError
		categoryErr *encoder.UnknownCategoryError
		featureErr  *encoder.UnknownFeatureError
		shapeErr    *ShapeMismatchError
		modelShape  *model.ShapeMismatchError
		invokeErr   *ModelInvocationError
		modelInvoke *model.InvocationError
		inputErr    *InvalidInputError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &loadErr):
		return KindLoad
	case errors.As(err, &categoryErr):
		return KindUnknownCategory
	case errors.As(err, &shapeErr), errors.As(err, &modelShape), errors.As(err, &featureErr):
		return KindShapeMismatch
	case errors.As(err, &invokeErr), errors.As(err, &modelInvoke):
		return KindModelInvocation
	case errors.As(err, &inputErr):
		return KindInvalidInput
	default:
		return KindUnknown
	}
}
