package artifact

import "fmt"

// LoadError is returned when a persisted artifact is missing, unreadable or
// does not describe what the service expects. It is fatal at startup.
type LoadError struct {
	Artifact string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load artifact %s: %v", e.Artifact, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
