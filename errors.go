package cacophony

import (
	"errors"
	"fmt"
)

// Rendering and loading failures are reported synchronously to the caller
// as errors wrapping one of these sentinels; nothing is retried inside the
// core. Sample clamping during mixing is not an error.
var (
	ErrInvalidTempo         = errors.New("tempo must be positive")
	ErrInvalidNote          = errors.New("invalid note")
	ErrBackendNotReady      = errors.New("backend not ready")
	ErrUnsupportedParameter = errors.New("unsupported backend parameter")
	ErrResourceLoad         = errors.New("resource load failed")
)

// NoteError reports that rendering a single note of a track failed. The
// surrounding render still returns a buffer of the full track length, with
// the failed note left silent.
type NoteError struct {
	Index int // index of the note within its track
	Err   error
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("note %v: %v", e.Index, e.Err)
}

func (e *NoteError) Unwrap() error {
	return e.Err
}
