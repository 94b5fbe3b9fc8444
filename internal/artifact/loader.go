// Package artifact loads the fitted encoders and the trained classifier from
// persisted artifacts.
package artifact

import (
	"context"
	"fmt"

	"fininclusion/internal/encoder"
	"fininclusion/internal/model"
	"fininclusion/internal/schema"
)

// DefaultModelName is the artifact name of the classifier.
const DefaultModelName = "financial_inclusion_model.json"

// EncoderName returns the artifact name of the encoder for feature.
func EncoderName(feature string) string {
	return feature + "_encoder.json"
}

// Artifacts is everything inference needs, loaded once at startup.
type Artifacts struct {
	Bank  *encoder.Bank
	Model *model.Model
	// ModelVersion is the version recorded in the model artifact, or the
	// source version when the artifact carries none.
	ModelVersion string
	// Versions maps each artifact name to its version at the source.
	Versions map[string]string
}

// Load reads the encoder bank and the model from src.
func Load(ctx context.Context, src Source, modelName string) (*Artifacts, error) {
	versions := make(map[string]string)

	bank, err := loadBank(ctx, src, versions)
	if err != nil {
		return nil, err
	}

	m, err := loadModel(ctx, src, modelName, versions)
	if err != nil {
		return nil, err
	}

	name := modelName
	if name == "" {
		name = DefaultModelName
	}
	modelVersion := m.Version()
	if modelVersion == "" {
		modelVersion = versions[name]
	}

	return &Artifacts{Bank: bank, Model: m, ModelVersion: modelVersion, Versions: versions}, nil
}

// LoadBank reads one encoder per categorical feature from src.
func LoadBank(ctx context.Context, src Source) (*encoder.Bank, error) {
	return loadBank(ctx, src, make(map[string]string))
}

// LoadModel reads the classifier artifact called name from src.
func LoadModel(ctx context.Context, src Source, name string) (*model.Model, error) {
	return loadModel(ctx, src, name, make(map[string]string))
}

func loadBank(ctx context.Context, src Source, versions map[string]string) (*encoder.Bank, error) {
	features := schema.Categorical()
	encoders := make([]*encoder.Encoder, 0, len(features))

	for _, feature := range features {
		name := EncoderName(feature)
		blob, err := src.Read(ctx, name)
		if err != nil {
			return nil, &LoadError{Artifact: name, Err: err}
		}

		enc, err := encoder.Parse(blob.Data)
		if err != nil {
			return nil, &LoadError{Artifact: name, Err: err}
		}
		if enc.Feature() != feature {
			return nil, &LoadError{
				Artifact: name,
				Err:      fmt.Errorf("artifact encodes %s, want %s", enc.Feature(), feature),
			}
		}

		encoders = append(encoders, enc)
		versions[name] = blob.Version
	}

	bank, err := encoder.NewBank(encoders...)
	if err != nil {
		return nil, &LoadError{Artifact: "encoders", Err: err}
	}
	return bank, nil
}

func loadModel(ctx context.Context, src Source, name string, versions map[string]string) (*model.Model, error) {
	if name == "" {
		name = DefaultModelName
	}

	blob, err := src.Read(ctx, name)
	if err != nil {
		return nil, &LoadError{Artifact: name, Err: err}
	}

	m, err := model.Parse(blob.Data)
	if err != nil {
		return nil, &LoadError{Artifact: name, Err: err}
	}

	versions[name] = blob.Version

	return m, nil
}
