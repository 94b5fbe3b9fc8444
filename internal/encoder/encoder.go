// Package encoder holds the fitted categorical encoders used to turn form
// labels into the integer codes the classifier was trained on.
package encoder

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Encoder maps the labels of one categorical feature to integer codes.
// classes[i] encodes to i. An Encoder is never mutated after construction.
type Encoder struct {
	feature string
	classes []string
	codes   map[string]int
}

// New creates an encoder from its fitted class order.
func New(feature string, classes []string) (*Encoder, error) {
	if feature == "" {
		return nil, errors.New("encoder feature name is empty")
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("encoder %s has no classes", feature)
	}

	codes := make(map[string]int, len(classes))
	for i, label := range classes {
		if _, dup := codes[label]; dup {
			return nil, fmt.Errorf("encoder %s has duplicate class %q", feature, label)
		}
		codes[label] = i
	}

	owned := make([]string, len(classes))
	copy(owned, classes)

	return &Encoder{feature: feature, classes: owned, codes: codes}, nil
}

// Feature returns the feature this encoder was fitted on.
func (e *Encoder) Feature() string {
	return e.feature
}

// Encode returns the code for label.
func (e *Encoder) Encode(label string) (int, error) {
	code, ok := e.codes[label]
	if !ok {
		return 0, &UnknownCategoryError{Feature: e.feature, Label: label}
	}
	return code, nil
}

// Decode returns the label for code.
func (e *Encoder) Decode(code int) (string, bool) {
	if code < 0 || code >= len(e.classes) {
		return "", false
	}
	return e.classes[code], true
}

// Classes returns a copy of the fitted vocabulary in code order.
func (e *Encoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Len returns the vocabulary size.
func (e *Encoder) Len() int {
	return len(e.classes)
}

// Contains reports whether label is in the fitted vocabulary.
func (e *Encoder) Contains(label string) bool {
	_, ok := e.codes[label]
	return ok
}

// artifact is the persisted form of a fitted encoder.
type artifact struct {
	Feature string   `json:"feature"`
	Classes []string `json:"classes"`
}

// Parse decodes an encoder artifact.
func Parse(data []byte) (*Encoder, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode encoder artifact: %w", err)
	}
	return New(a.Feature, a.Classes)
}

// MarshalJSON encodes the encoder in its artifact form.
func (e *Encoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(artifact{Feature: e.feature, Classes: e.classes})
}
