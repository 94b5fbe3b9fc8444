package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrEmptyArtifact    = errors.New("artifact payload is empty")
)
