package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested day or file does not exist.
	ErrNotFound = errors.New("scenario not found")

	// ErrNoScenarios is returned when no day file could be loaded.
	ErrNoScenarios = errors.New("no scenarios available")

	// ErrUnsupportedFormat is returned for day files written for a newer format.
	ErrUnsupportedFormat = errors.New("unsupported scenario format version")
)

// ValidationError reports a file that failed to decode or validate.
type ValidationError struct {
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scenario file %s: %v", e.File, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
