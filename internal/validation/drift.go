package validation

import (
	"fmt"
	"sort"
	"strings"

	"fininclusion/internal/config"
	"fininclusion/internal/encoder"
)

// Drift lists the differences between the labels the form offers and the
// labels the encoders were fitted on, keyed by feature.
type Drift struct {
	// Missing holds form labels the encoder cannot encode. Selecting one
	// would always fail at inference time.
	Missing map[string][]string
	// Unoffered holds fitted labels the form does not offer.
	Unoffered map[string][]string
}

// HasMissing reports whether any offered label is unencodable.
func (d Drift) HasMissing() bool {
	return len(d.Missing) > 0
}

// Err returns an error describing unencodable labels, or nil.
func (d Drift) Err() error {
	if !d.HasMissing() {
		return nil
	}

	features := make([]string, 0, len(d.Missing))
	for f := range d.Missing {
		features = append(features, f)
	}
	sort.Strings(features)

	parts := make([]string, 0, len(features))
	for _, f := range features {
		parts = append(parts, fmt.Sprintf("%s: %q", f, d.Missing[f]))
	}
	return fmt.Errorf("form offers labels the encoders were not fitted on (%s)", strings.Join(parts, "; "))
}

// CheckVocabularyDrift compares the form vocabularies with the bank.
func CheckVocabularyDrift(form *config.FormConfig, bank *encoder.Bank) Drift {
	drift := Drift{
		Missing:   make(map[string][]string),
		Unoffered: make(map[string][]string),
	}

	vocab := form.Vocabularies()
	for _, feature := range bank.Features() {
		enc, _ := bank.Encoder(feature)
		offered := make(map[string]bool)

		for _, label := range vocab[feature] {
			offered[label] = true
			if !enc.Contains(label) {
				drift.Missing[feature] = append(drift.Missing[feature], label)
			}
		}
		for _, label := range enc.Classes() {
			if !offered[label] {
				drift.Unoffered[feature] = append(drift.Unoffered[feature], label)
			}
		}
	}

	return drift
}
