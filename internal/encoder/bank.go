package encoder

import (
	"fmt"
	"sort"

	"fininclusion/internal/schema"
)

// Bank holds one encoder per categorical feature of the schema.
// It is read-only after NewBank returns and safe for concurrent use.
type Bank struct {
	encoders map[string]*Encoder
}

// NewBank builds a bank from encoders. Every categorical schema feature must
// be covered exactly once and no extra features are accepted.
func NewBank(encoders ...*Encoder) (*Bank, error) {
	m := make(map[string]*Encoder, len(encoders))
	for _, enc := range encoders {
		if enc == nil {
			return nil, fmt.Errorf("nil encoder")
		}
		name := enc.Feature()
		if _, dup := m[name]; dup {
			return nil, fmt.Errorf("duplicate encoder for feature %s", name)
		}
		if _, ok := schema.Position(name); !ok || schema.IsNumeric(name) {
			return nil, fmt.Errorf("encoder for %s does not match a categorical feature", name)
		}
		m[name] = enc
	}

	for _, name := range schema.Categorical() {
		if _, ok := m[name]; !ok {
			return nil, fmt.Errorf("missing encoder for feature %s", name)
		}
	}

	return &Bank{encoders: m}, nil
}

// Encode looks up the code for label in the encoder of feature.
func (b *Bank) Encode(feature, label string) (int, error) {
	enc, ok := b.encoders[feature]
	if !ok {
		return 0, &UnknownFeatureError{Feature: feature}
	}
	return enc.Encode(label)
}

// Encoder returns the encoder for feature.
func (b *Bank) Encoder(feature string) (*Encoder, bool) {
	enc, ok := b.encoders[feature]
	return enc, ok
}

// Features returns the encoded feature names, sorted.
func (b *Bank) Features() []string {
	names := make([]string, 0, len(b.encoders))
	for name := range b.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
