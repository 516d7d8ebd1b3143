package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestNotFound is returned when the meta-manifest cannot be read at all.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrDetailNotFound is returned when a conversation's detail file is
	// missing or cannot be parsed.
	ErrDetailNotFound = errors.New("detail not found")
)

// LineError describes a meta-manifest line that was skipped.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("manifest line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
