// Package app loads everything a prediction process needs before it can
// serve: configuration, artifacts, the form and the pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"fininclusion/internal/artifact"
	"fininclusion/internal/config"
	"fininclusion/internal/db"
	"fininclusion/internal/inference"
	"fininclusion/internal/validation"
)

// Runtime holds the loaded, immutable prediction state.
type Runtime struct {
	Cfg       *config.Config
	DB        *db.DB // nil unless artifacts are read from Postgres
	Artifacts *artifact.Artifacts
	Form      *config.FormConfig
	Pipeline  *inference.Pipeline
}

// Open loads artifacts from the configured source, reads the form config and
// checks that every offered label can be encoded.
func Open(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	src, database, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Cfg: cfg, DB: database}
	if err := rt.load(ctx, src); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) load(ctx context.Context, src artifact.Source) error {
	arts, err := artifact.Load(ctx, src, rt.Cfg.ModelArtifact)
	if err != nil {
		return err
	}
	slog.Info("artifacts loaded",
		"source", rt.Cfg.ArtifactSource,
		"model", rt.Cfg.ModelArtifact,
		"model_type", arts.Model.Type(),
		"model_version", arts.ModelVersion,
	)

	form, err := config.LoadFormConfig()
	if err != nil {
		return fmt.Errorf("failed to load form config: %w", err)
	}

	drift := validation.CheckVocabularyDrift(form, arts.Bank)
	for feature, labels := range drift.Unoffered {
		slog.Warn("form does not offer fitted labels", "feature", feature, "labels", labels)
	}
	if err := drift.Err(); err != nil {
		return err
	}

	rt.Artifacts = arts
	rt.Form = form
	rt.Pipeline = inference.NewPipeline(arts.Bank, arts.Model)
	return nil
}

// Close releases the database connection, if any.
func (rt *Runtime) Close() {
	if rt.DB != nil {
		rt.DB.Close()
	}
}

// OpenSource returns the artifact source named by cfg. The returned database
// is non-nil only for the Postgres source and must be closed by the caller.
func OpenSource(ctx context.Context, cfg *config.Config) (artifact.Source, *db.DB, error) {
	switch cfg.ArtifactSource {
	case config.SourceFile:
		return artifact.FileSource{Dir: cfg.ArtifactDir}, nil, nil
	case config.SourcePostgres:
		database, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return artifact.StoreSource{Store: database}, database, nil
	default:
		return nil, nil, fmt.Errorf("unknown artifact source %q", cfg.ArtifactSource)
	}
}

// OpenDB connects to the artifact store and applies migrations.
func OpenDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("migrations completed successfully")
	return database, nil
}
