package cacophony

import (
	"errors"
	"fmt"
)

// Track is an ordered sequence of notes bound to exactly one Synthesizer.
// The track is the sole owner of its synthesizer and of whatever
// configuration state the backend carries (waveform, loaded instrument);
// two tracks never share a synthesizer. Notes are expected in time order
// but this is not enforced: overlapping and out-of-order notes render
// correctly, overlap summing additively into chords.
type Track struct {
	Synth *Synthesizer
	Notes []Note
}

func NewTrack(synth *Synthesizer, notes ...Note) *Track {
	return &Track{Synth: synth, Notes: notes}
}

// AddNote appends a note; a live-capture harness calls this while
// recording.
func (t *Track) AddNote(note Note) {
	t.Notes = append(t.Notes, note)
}

// EndBeat returns the beat at which the last note or rest ends. Notes may
// be out of order, so all of them are scanned.
func (t *Track) EndBeat() float64 {
	var end float64
	for _, n := range t.Notes {
		if e := n.End(); e > end {
			end = e
		}
	}
	return end
}

// Copy makes a deep copy of the notes. The synthesizer reference is
// carried over as-is, so the copy and the original must not render
// concurrently.
func (t *Track) Copy() *Track {
	notes := make([]Note, len(t.Notes))
	for i := range t.Notes {
		notes[i] = t.Notes[i].Copy()
	}
	return &Track{Synth: t.Synth, Notes: notes}
}

// Render renders every note at the given tempo and lays the results onto
// one buffer covering the latest note end. The buffer starts out as
// silence, so rests need no explicit write; only their duration
// contributes to the length. Overlapping notes sum sample-by-sample. A
// note that fails to render is left silent but the failure is reported,
// preserving the buffer shape instead of aborting the whole render.
func (t *Track) Render(bpm int) (AudioBuffer, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTempo, bpm)
	}
	type span struct {
		start  int // in frames
		buffer AudioBuffer
	}
	frames := BeatsToFrames(bpm, t.EndBeat())
	spans := make([]span, 0, len(t.Notes))
	var errs []error
	for i, note := range t.Notes {
		if note.IsRest() && note.Validate() == nil {
			continue
		}
		rendered, err := t.Synth.Render(note, bpm)
		if err != nil {
			errs = append(errs, &NoteError{Index: i, Err: err})
			continue
		}
		start := BeatsToFrames(bpm, note.Start)
		// note starts and lengths round independently, so a span may stick
		// out a frame past the nominal track end
		if end := start + rendered.NumFrames(); end > frames {
			frames = end
		}
		spans = append(spans, span{start: start, buffer: rendered})
	}
	buffer := make(AudioBuffer, frames*NumChannels)
	for _, s := range spans {
		Mix(buffer, s.buffer, s.start)
	}
	return buffer, errors.Join(errs...)
}
