package models

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an unknown record name or a categorical value that
// was never observed in the fitted catalog.
var ErrNotFound = errors.New("record not found")

// ErrGenerationUnavailable reports that the external text-generation
// collaborator is not configured, failed or timed out. The chat responder
// always recovers from it locally; it never reaches API callers.
var ErrGenerationUnavailable = errors.New("text generation unavailable")

// EncodingError reports a record missing an attribute the encoder
// requires.
type EncodingError struct {
	Record    string
	Attribute string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("record %q missing required attribute %q", e.Record, e.Attribute)
}

// DimensionMismatchError reports a query vector whose length does not
// match the encoder's output dimensionality.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// LoadError reports a corrupt or incompatible persisted model snapshot.
// Fatal at startup, but surfaced as a diagnostic rather than a panic.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model snapshot %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
