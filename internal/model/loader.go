package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"fininclusion/internal/schema"
)

// Supported artifact types.
const (
	TypeDecisionTree       = "decision_tree"
	TypeRandomForest       = "random_forest"
	TypeLogisticRegression = "logistic_regression"
)

// Artifact is the persisted form of a trained classifier.
type Artifact struct {
	Type         string     `json:"type"`
	Version      string     `json:"version"`
	FeatureNames []string   `json:"feature_names"`
	Classes      []int      `json:"classes"`
	Nodes        []TreeNode `json:"nodes,omitempty"`
	Trees        []Tree     `json:"trees,omitempty"`
	Coef         []float64  `json:"coef,omitempty"`
	Intercept    float64    `json:"intercept,omitempty"`
}

// Model is a Classifier loaded from an Artifact.
type Model struct {
	base
	kind    string
	version string
}

// Type returns the artifact type the model was loaded from.
func (m *Model) Type() string {
	return m.kind
}

// Version returns the artifact version string.
func (m *Model) Version() string {
	return m.version
}

// Parse decodes and validates a model artifact.
func Parse(data []byte) (*Model, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	return FromArtifact(a)
}

// FromArtifact builds a Model from a decoded artifact. The artifact's feature
// names must equal the schema column order.
func FromArtifact(a Artifact) (*Model, error) {
	if !schema.Matches(a.FeatureNames) {
		return nil, fmt.Errorf("model feature names %v do not match schema order %v", a.FeatureNames, schema.Order())
	}
	if len(a.Classes) != 2 || a.Classes[0] != 0 || a.Classes[1] != 1 {
		return nil, fmt.Errorf("model classes %v, want [0 1]", a.Classes)
	}

	nFeatures := len(a.FeatureNames)
	nClasses := len(a.Classes)

	var s scorer
	switch a.Type {
	case TypeDecisionTree:
		tree := &Tree{Nodes: a.Nodes}
		if err := tree.validate(nFeatures, nClasses); err != nil {
			return nil, err
		}
		s = tree
	case TypeRandomForest:
		if len(a.Trees) == 0 {
			return nil, errors.New("random forest has no trees")
		}
		for i := range a.Trees {
			if err := a.Trees[i].validate(nFeatures, nClasses); err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
		}
		s = &forest{trees: a.Trees}
	case TypeLogisticRegression:
		if len(a.Coef) != nFeatures {
			return nil, fmt.Errorf("logistic regression has %d coefficients, want %d", len(a.Coef), nFeatures)
		}
		s = &logistic{coef: a.Coef, intercept: a.Intercept}
	default:
		return nil, fmt.Errorf("unsupported model type %q", a.Type)
	}

	return &Model{
		base: base{
			nFeatures: nFeatures,
			classes:   append([]int(nil), a.Classes...),
			scorer:    s,
		},
		kind:    a.Type,
		version: a.Version,
	}, nil
}
