package model

import (
	"errors"
	"math"
	"testing"

	"fininclusion/internal/schema"
)

func treeNodes() []TreeNode {
	return []TreeNode{
		{Feature: 3, Threshold: 0.5, Left: 1, Right: 2},
		{Left: -1, Right: -1, Value: []float64{80, 20}},
		{Feature: 8, Threshold: 2.5, Left: 3, Right: 4},
		{Left: -1, Right: -1, Value: []float64{60, 40}},
		{Left: -1, Right: -1, Value: []float64{10, 90}},
	}
}

func treeArtifact() Artifact {
	return Artifact{
		Type:         TypeDecisionTree,
		Version:      "test-1",
		FeatureNames: schema.Order(),
		Classes:      []int{0, 1},
		Nodes:        treeNodes(),
	}
}

// row builds a feature row with the given cellphone_access and education_level codes.
func row(cellphone, education float64) []float64 {
	r := make([]float64, schema.Width())
	r[3] = cellphone
	r[8] = education
	return r
}

func TestDecisionTree_PredictProba(t *testing.T) {
	m, err := FromArtifact(treeArtifact())
	if err != nil {
		t.Fatalf("FromArtifact() error: %v", err)
	}

	tests := []struct {
		name      string
		row       []float64
		wantLabel int
		wantP1    float64
	}{
		{"no cellphone", row(0, 3), 0, 0.2},
		{"cellphone, primary education", row(1, 2), 0, 0.4},
		{"cellphone, secondary education", row(1, 3), 1, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probas, err := m.PredictProba([][]float64{tt.row})
			if err != nil {
				t.Fatalf("PredictProba() error: %v", err)
			}
			if math.Abs(probas[0][1]-tt.wantP1) > 1e-9 {
				t.Errorf("P(1) = %v, want %v", probas[0][1], tt.wantP1)
			}
			if math.Abs(probas[0][0]+probas[0][1]-1) > 1e-9 {
				t.Errorf("probabilities %v do not sum to 1", probas[0])
			}

			labels, err := m.Predict([][]float64{tt.row})
			if err != nil {
				t.Fatalf("Predict() error: %v", err)
			}
			if labels[0] != tt.wantLabel {
				t.Errorf("Predict() = %d, want %d", labels[0], tt.wantLabel)
			}
		})
	}
}

func TestRandomForest_AveragesTrees(t *testing.T) {
	a := treeArtifact()
	a.Type = TypeRandomForest
	a.Nodes = nil
	a.Trees = []Tree{
		{Nodes: treeNodes()},
		{Nodes: []TreeNode{{Left: -1, Right: -1, Value: []float64{1, 1}}}},
	}

	m, err := FromArtifact(a)
	if err != nil {
		t.Fatalf("FromArtifact() error: %v", err)
	}

	probas, err := m.PredictProba([][]float64{row(1, 3)})
	if err != nil {
		t.Fatalf("PredictProba() error: %v", err)
	}
	if want := (0.9 + 0.5) / 2; math.Abs(probas[0][1]-want) > 1e-9 {
		t.Errorf("P(1) = %v, want %v", probas[0][1], want)
	}
}

func TestLogisticRegression(t *testing.T) {
	coef := make([]float64, schema.Width())
	coef[3] = 2

	m, err := FromArtifact(Artifact{
		Type:         TypeLogisticRegression,
		FeatureNames: schema.Order(),
		Classes:      []int{0, 1},
		Coef:         coef,
		Intercept:    -1,
	})
	if err != nil {
		t.Fatalf("FromArtifact() error: %v", err)
	}

	probas, err := m.PredictProba([][]float64{row(1, 0), row(0, 0)})
	if err != nil {
		t.Fatalf("PredictProba() error: %v", err)
	}
	if want := 1 / (1 + math.Exp(-1)); math.Abs(probas[0][1]-want) > 1e-9 {
		t.Errorf("P(1) = %v, want %v", probas[0][1], want)
	}

	labels, _ := m.Predict([][]float64{row(1, 0), row(0, 0)})
	if labels[0] != 1 || labels[1] != 0 {
		t.Errorf("Predict() = %v, want [1 0]", labels)
	}
}

func TestShapeMismatch(t *testing.T) {
	m, _ := FromArtifact(treeArtifact())

	for _, width := range []int{0, 10, 12} {
		_, err := m.Predict([][]float64{make([]float64, width)})
		var shape *ShapeMismatchError
		if !errors.As(err, &shape) {
			t.Fatalf("width %d: error = %v, want ShapeMismatchError", width, err)
		}
		if shape.Want != 11 || shape.Got != width {
			t.Errorf("width %d: got %+v", width, shape)
		}
	}
}

func TestPredict_NoRows(t *testing.T) {
	m, _ := FromArtifact(treeArtifact())

	_, err := m.Predict(nil)
	var inv *InvocationError
	if !errors.As(err, &inv) {
		t.Fatalf("Predict(nil) error = %v, want InvocationError", err)
	}
	if inv.Op != "predict" {
		t.Errorf("Op = %q, want predict", inv.Op)
	}
}

func TestPredict_NonFiniteOutput(t *testing.T) {
	coef := make([]float64, schema.Width())
	coef[0] = 1

	m, _ := FromArtifact(Artifact{
		Type:         TypeLogisticRegression,
		FeatureNames: schema.Order(),
		Classes:      []int{0, 1},
		Coef:         coef,
	})

	r := make([]float64, schema.Width())
	r[0] = math.NaN()
	_, err := m.PredictProba([][]float64{r})
	var inv *InvocationError
	if !errors.As(err, &inv) {
		t.Fatalf("error = %v, want InvocationError", err)
	}
}

func TestFromArtifact_Rejects(t *testing.T) {
	permuted := schema.Order()
	permuted[1], permuted[2] = permuted[2], permuted[1]

	tests := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{"permuted feature names", func(a *Artifact) { a.FeatureNames = permuted }},
		{"missing feature names", func(a *Artifact) { a.FeatureNames = nil }},
		{"multiclass", func(a *Artifact) { a.Classes = []int{0, 1, 2} }},
		{"swapped classes", func(a *Artifact) { a.Classes = []int{1, 0} }},
		{"unknown type", func(a *Artifact) { a.Type = "svm" }},
		{"empty tree", func(a *Artifact) { a.Nodes = nil }},
		{"child before parent", func(a *Artifact) { a.Nodes[2].Left = 0 }},
		{"feature out of range", func(a *Artifact) { a.Nodes[0].Feature = 11 }},
		{"leaf value width", func(a *Artifact) { a.Nodes[1].Value = []float64{1} }},
		{"leaf counts all zero", func(a *Artifact) { a.Nodes[1].Value = []float64{0, 0} }},
		{"negative leaf count", func(a *Artifact) { a.Nodes[1].Value = []float64{-3, 3} }},
		{"NaN leaf count", func(a *Artifact) { a.Nodes[1].Value = []float64{math.NaN(), 1} }},
		{"infinite leaf count", func(a *Artifact) { a.Nodes[1].Value = []float64{math.Inf(1), 1} }},
		{"forest with zero leaf", func(a *Artifact) {
			bad := Tree{Nodes: []TreeNode{{Left: -1, Right: -1, Value: []float64{0, 0}}}}
			a.Type = TypeRandomForest
			a.Trees = []Tree{{Nodes: a.Nodes}, bad}
			a.Nodes = nil
		}},
		{"empty forest", func(a *Artifact) { a.Type = TypeRandomForest }},
		{"short coefficients", func(a *Artifact) { a.Type = TypeLogisticRegression; a.Coef = []float64{1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := treeArtifact()
			tt.mutate(&a)
			if _, err := FromArtifact(a); err == nil {
				t.Error("FromArtifact() error = nil, want error")
			}
		})
	}
}

func TestParse(t *testing.T) {
	data := []byte(`{
		"type": "decision_tree",
		"version": "2024-05-01",
		"feature_names": ["country","year","location_type","cellphone_access","household_size","age_of_respondent","gender_of_respondent","relationship_with_head","education_level","job_type","marital_status"],
		"classes": [0, 1],
		"nodes": [{"feature": -1, "threshold": 0, "left": -1, "right": -1, "value": [3, 1]}]
	}`)

	m, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if m.Type() != TypeDecisionTree || m.Version() != "2024-05-01" {
		t.Errorf("Type/Version = %s/%s", m.Type(), m.Version())
	}
	if m.NumFeatures() != 11 {
		t.Errorf("NumFeatures() = %d, want 11", m.NumFeatures())
	}

	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("Parse(corrupt) error = nil")
	}
}
