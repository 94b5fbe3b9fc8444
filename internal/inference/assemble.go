package inference

import (
	"fmt"

	"fininclusion/internal/schema"
)

// Encoder looks up the integer code of a categorical label.
type Encoder interface {
	Encode(feature, label string) (int, error)
}

// Assemble encodes values and places each one at its schema position.
// The order of values does not matter; every schema field must appear once.
func Assemble(enc Encoder, values []FieldValue) ([]float64, error) {
	width := schema.Width()
	vec := make([]float64, width)
	seen := make([]bool, width)

	for _, v := range values {
		pos, ok := schema.Position(v.Name)
		if !ok {
			return nil, &ShapeMismatchError{Want: width, Got: len(values), Field: v.Name, Reason: "unknown field"}
		}
		if seen[pos] {
			return nil, &ShapeMismatchError{Want: width, Got: len(values), Field: v.Name, Reason: "duplicate field"}
		}
		seen[pos] = true

		if schema.IsNumeric(v.Name) {
			vec[pos] = v.Number
			continue
		}

		code, err := enc.Encode(v.Name, v.Label)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", v.Name, err)
		}
		vec[pos] = float64(code)
	}

	for pos, ok := range seen {
		if !ok {
			return nil, &ShapeMismatchError{Want: width, Got: len(values), Field: schema.Order()[pos], Reason: "missing field"}
		}
	}

	return vec, nil
}
