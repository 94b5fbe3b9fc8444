package model

import "fmt"

// ShapeMismatchError is returned when a feature row does not have the width
// the classifier was trained on.
type ShapeMismatchError struct {
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("feature row has %d values, model expects %d", e.Got, e.Want)
}

// InvocationError is returned when the classifier fails while scoring rows
// of a valid shape.
type InvocationError struct {
	Op  string
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("model %s failed: %v", e.Op, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
