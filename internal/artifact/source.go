package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fininclusion/internal/db"
)

// Blob is the raw content of a persisted artifact.
type Blob struct {
	Data    []byte
	Version string
}

// Source reads persisted artifacts by name.
type Source interface {
	Read(ctx context.Context, name string) (Blob, error)
}

// FileSource reads artifacts from a directory.
type FileSource struct {
	Dir string
}

// Read returns the content of Dir/name. The version is derived from the
// content checksum since plain files carry no version of their own.
func (s FileSource) Read(_ context.Context, name string) (Blob, error) {
	if filepath.Base(name) != name {
		return Blob{}, fmt.Errorf("invalid artifact name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return Blob{}, err
	}
	return Blob{Data: data, Version: db.Checksum(data)[:12]}, nil
}

// ArtifactStore is the subset of the database used to read artifacts.
type ArtifactStore interface {
	GetArtifact(ctx context.Context, name string) (*db.StoredArtifact, error)
}

// StoreSource reads artifacts from the database artifact store.
type StoreSource struct {
	Store ArtifactStore
}

// Read returns the stored artifact payload and version.
func (s StoreSource) Read(ctx context.Context, name string) (Blob, error) {
	a, err := s.Store.GetArtifact(ctx, name)
	if err != nil {
		return Blob{}, err
	}
	return Blob{Data: a.Payload, Version: a.Version}, nil
}

// MemorySource serves artifacts from memory, keyed by name.
type MemorySource map[string][]byte

// Read returns the named entry.
func (s MemorySource) Read(_ context.Context, name string) (Blob, error) {
	data, ok := s[name]
	if !ok {
		return Blob{}, fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	return Blob{Data: data, Version: "memory"}, nil
}
