// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fininclusion/internal/artifact"
	"fininclusion/internal/db"
	"fininclusion/internal/encoder"
	"fininclusion/internal/model"
	"fininclusion/internal/schema"
)

// ModelVersion is the version string of the fixture model.
const ModelVersion = "fixture-1"

// Vocabularies returns the fitted class order of every categorical feature,
// as produced by label encoding the survey data.
func Vocabularies() map[string][]string {
	return map[string][]string{
		schema.Country:              {"Kenya", "Rwanda", "Tanzania", "Uganda"},
		schema.LocationType:         {"Rural", "Urban"},
		schema.CellphoneAccess:      {"No", "Yes"},
		schema.GenderOfRespondent:   {"Female", "Male"},
		schema.RelationshipWithHead: {"Child", "Head of Household", "Other non-relatives", "Other relative", "Parent", "Spouse"},
		schema.EducationLevel:       {"No formal education", "Other/Dont know/RTA", "Primary education", "Secondary education", "Tertiary education", "Vocational/Specialised training"},
		schema.JobType:              {"Dont Know/Refuse to answer", "Farming and Fishing", "Formally employed Government", "Formally employed Private", "Government Dependent", "Informally employed", "No Income", "Other Income", "Remittance Dependent", "Self employed"},
		schema.MaritalStatus:        {"Divorced/Seperated", "Dont know", "Married/Living together", "Single/Never Married", "Widowed"},
	}
}

// Bank returns an encoder bank fitted on Vocabularies.
func Bank(t *testing.T) *encoder.Bank {
	t.Helper()

	var encoders []*encoder.Encoder
	for feature, classes := range Vocabularies() {
		enc, err := encoder.New(feature, classes)
		if err != nil {
			t.Fatalf("failed to build encoder %s: %v", feature, err)
		}
		encoders = append(encoders, enc)
	}

	bank, err := encoder.NewBank(encoders...)
	if err != nil {
		t.Fatalf("failed to build encoder bank: %v", err)
	}
	return bank
}

// ModelArtifact returns a small decision tree over the schema: no cellphone
// access predicts 0, cellphone access with at least secondary education
// predicts 1 with 0.9 confidence.
func ModelArtifact() model.Artifact {
	return model.Artifact{
		Type:         model.TypeDecisionTree,
		Version:      ModelVersion,
		FeatureNames: schema.Order(),
		Classes:      []int{0, 1},
		Nodes: []model.TreeNode{
			{Feature: 3, Threshold: 0.5, Left: 1, Right: 2},
			{Left: -1, Right: -1, Value: []float64{80, 20}},
			{Feature: 8, Threshold: 2.5, Left: 3, Right: 4},
			{Left: -1, Right: -1, Value: []float64{60, 40}},
			{Left: -1, Right: -1, Value: []float64{10, 90}},
		},
	}
}

// Model returns the fixture classifier.
func Model(t *testing.T) *model.Model {
	t.Helper()

	m, err := model.FromArtifact(ModelArtifact())
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	return m
}

// Source returns an in-memory artifact source holding every fixture artifact.
func Source(t *testing.T) artifact.MemorySource {
	t.Helper()

	src := artifact.MemorySource{}
	for feature, classes := range Vocabularies() {
		data, err := json.Marshal(map[string]any{"feature": feature, "classes": classes})
		if err != nil {
			t.Fatalf("failed to encode encoder artifact: %v", err)
		}
		src[artifact.EncoderName(feature)] = data
	}

	data, err := json.Marshal(ModelArtifact())
	if err != nil {
		t.Fatalf("failed to encode model artifact: %v", err)
	}
	src[artifact.DefaultModelName] = data

	return src
}

// WriteArtifacts writes the fixture artifacts to a temporary directory and
// returns its path.
func WriteArtifacts(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range Source(t) {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			t.Fatalf("failed to write artifact %s: %v", name, err)
		}
	}
	return dir
}

// TestDB creates a test database connection and returns a cleanup function.
// Uses TEST_DATABASE_URL and skips the test when it is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM model_artifacts")
		database.Close()
	}

	return database, cleanup
}
