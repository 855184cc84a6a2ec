package cacophony

import (
	"fmt"
	"math"
)

// Note is an immutable value describing either a pitched note or a rest.
// Start and Duration are measured in beats; the tempo they are played at
// is decided by the composition, not the note. A nil Pitch marks a rest:
// it consumes time but makes no sound.
type Note struct {
	Pitch    *int    `yaml:"pitch,omitempty" json:"pitch,omitempty"`
	Start    float64 `yaml:"start" json:"start"`
	Duration float64 `yaml:"duration" json:"duration"`
	Volume   int     `yaml:"volume" json:"volume"`
}

// NewNote returns a pitched note. Pitch is a MIDI key number (60 = middle
// C) and volume a MIDI velocity in 0-127.
func NewNote(pitch int, start, duration float64, volume int) Note {
	return Note{Pitch: &pitch, Start: start, Duration: duration, Volume: volume}
}

// NewRest returns a note with no pitch.
func NewRest(start, duration float64) Note {
	return Note{Start: start, Duration: duration}
}

func (n Note) IsRest() bool {
	return n.Pitch == nil
}

// End returns the beat at which the note stops sounding.
func (n Note) End() float64 {
	return n.Start + n.Duration
}

// Frequency returns the pitch in Hz, equal temperament with A4 = 440 Hz.
// Panics on rests; backends are only ever handed pitched notes.
func (n Note) Frequency() float64 {
	if n.Pitch == nil {
		panic("Frequency called on a rest")
	}
	return 440 * math.Pow(2, float64(*n.Pitch-69)/12)
}

// Amplitude maps the MIDI volume to a linear amplitude in [0, 1].
func (n Note) Amplitude() float64 {
	return float64(n.Volume) / 127
}

// Copy makes a deep copy of a Note.
func (n *Note) Copy() Note {
	ret := *n
	if n.Pitch != nil {
		pitch := *n.Pitch
		ret.Pitch = &pitch
	}
	return ret
}

func (n Note) Validate() error {
	if n.Duration <= 0 {
		return fmt.Errorf("%w: duration should be > 0, got %v", ErrInvalidNote, n.Duration)
	}
	if n.Start < 0 {
		return fmt.Errorf("%w: start should be >= 0, got %v", ErrInvalidNote, n.Start)
	}
	if n.Volume < 0 || n.Volume > 127 {
		return fmt.Errorf("%w: volume should be 0-127, got %v", ErrInvalidNote, n.Volume)
	}
	if n.Pitch != nil && (*n.Pitch < 0 || *n.Pitch > 127) {
		return fmt.Errorf("%w: pitch should be 0-127, got %v", ErrInvalidNote, *n.Pitch)
	}
	return nil
}
