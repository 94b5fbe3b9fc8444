package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// StoredArtifact is a versioned artifact blob kept in the database.
type StoredArtifact struct {
	Name      string
	Version   string
	Payload   []byte
	Checksum  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Checksum returns the hex SHA-256 of an artifact payload.
func Checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// PutArtifact inserts or replaces the artifact stored under name.
func (d *DB) PutArtifact(ctx context.Context, name, version string, payload []byte) error {
	if len(payload) == 0 {
		return ErrEmptyArtifact
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO model_artifacts (name, version, payload, checksum)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET version = EXCLUDED.version,
		    payload = EXCLUDED.payload,
		    checksum = EXCLUDED.checksum,
		    updated_at = NOW()
	`, name, version, payload, Checksum(payload))
	if err != nil {
		return fmt.Errorf("failed to store artifact %s: %w", name, err)
	}
	return nil
}

// GetArtifact returns the artifact stored under name.
func (d *DB) GetArtifact(ctx context.Context, name string) (*StoredArtifact, error) {
	var a StoredArtifact
	err := d.Pool.QueryRow(ctx, `
		SELECT name, version, payload, checksum, created_at, updated_at
		FROM model_artifacts
		WHERE name = $1
	`, name).Scan(&a.Name, &a.Version, &a.Payload, &a.Checksum, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArtifactNotFound
		}
		return nil, err
	}

	if Checksum(a.Payload) != a.Checksum {
		return nil, fmt.Errorf("artifact %s checksum mismatch", name)
	}

	return &a, nil
}

// ListArtifacts returns artifact metadata without payloads, ordered by name.
func (d *DB) ListArtifacts(ctx context.Context) ([]StoredArtifact, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT name, version, checksum, created_at, updated_at
		FROM model_artifacts
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []StoredArtifact
	for rows.Next() {
		var a StoredArtifact
		if err := rows.Scan(&a.Name, &a.Version, &a.Checksum, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
