package encoder

import "fmt"

// UnknownCategoryError is returned when a label was not part of the
// vocabulary the encoder was fitted on.
type UnknownCategoryError struct {
	Feature string
	Label   string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q for feature %s", e.Label, e.Feature)
}

// UnknownFeatureError is returned when the bank holds no encoder for a feature.
type UnknownFeatureError struct {
	Feature string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("no encoder for feature %s", e.Feature)
}
