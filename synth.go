package cacophony

import (
	"fmt"
)

// Backend is the extension point for synthesis strategies: it turns a
// single pitched note into a buffer of exactly duration seconds worth of
// samples in the process-wide sample format. Generate is never called for
// rests or with a non-positive duration; the Synthesizer wrapper handles
// those before any backend code runs. A backend may keep internal state
// across calls (oscillator phase, loaded instrument data), but that state
// belongs to one Synthesizer instance only and must not be shared between
// tracks.
type Backend interface {
	Generate(note Note, duration float64) (AudioBuffer, error)
}

// Synthesizer renders single notes at a given tempo. It is the sole owner
// of its backend, so the shared beat-to-seconds arithmetic and the rest
// short-circuit always run before the backend does; backends cannot bypass
// or reimplement them.
type Synthesizer struct {
	backend Backend
}

func NewSynthesizer(backend Backend) *Synthesizer {
	return &Synthesizer{backend: backend}
}

// Render synthesizes one note at the given tempo. A rest yields a
// zero-length buffer, not a silence-filled one: the synthesizer never pads
// rests, reintroducing their duration is the mixer's job. For pitched
// notes the backend must honor the requested duration to within one sample
// frame; violations are reported as errors rather than tolerated as drift.
func (s *Synthesizer) Render(note Note, bpm int) (AudioBuffer, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTempo, bpm)
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}
	if note.IsRest() {
		return nil, nil
	}
	duration := BeatsToSeconds(bpm, note.Duration)
	buffer, err := s.backend.Generate(note, duration)
	if err != nil {
		return nil, err
	}
	want := SecondsToFrames(duration)
	if got := buffer.NumFrames(); got < want-1 || got > want+1 {
		return nil, fmt.Errorf("backend %T rendered %v frames for a %v s note, expected %v", s.backend, got, duration, want)
	}
	return buffer, nil
}
