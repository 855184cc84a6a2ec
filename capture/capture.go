// Package capture records notes played on a MIDI input device into a
// track. The rendering core knows nothing about this loop; the recorder
// only appends Note values and calls into the track's synthesizer
// synchronously, once per event, when monitoring is enabled.
package capture

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/tversteeg/cacophony"
)

// State of the recorder. All keys pressed while in NotesHeld start at the
// same beat cursor, which is how chords are captured without a real-time
// clock.
type State int

const (
	Idle State = iota
	NotesHeld
)

// Recorder turns note-on/note-off events into notes on a track. It owns
// all of its loop state: the keys currently held, the beat cursor and the
// capture settings. The beat cursor advances by one note length exactly on
// the transition from one held key to none, triggered by a note-off.
type Recorder struct {
	mu     sync.Mutex
	track  *cacophony.Track
	held   []uint8 // keys currently down, in press order
	beat   float64
	length float64 // note length in beats
	volume int     // fixed volume; -1 means use the key velocity
}

func NewRecorder(track *cacophony.Track) *Recorder {
	return &Recorder{track: track, length: 1, volume: -1}
}

// SetNoteLength sets how many beats each captured note lasts.
func (r *Recorder) SetNoteLength(beats float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.length = beats
}

// SetFixedVolume makes every captured note use the given volume instead of
// the key velocity.
func (r *Recorder) SetFixedVolume(volume int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = volume
}

func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.held) == 0 {
		return Idle
	}
	return NotesHeld
}

// HeldCount returns the number of keys currently down.
func (r *Recorder) HeldCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.held)
}

// Beat returns the current beat cursor.
func (r *Recorder) Beat() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.beat
}

// NoteOn appends a note starting at the current beat cursor and marks the
// key as held. Returns the captured note, e.g. for monitoring.
func (r *Recorder) NoteOn(key, velocity uint8) cacophony.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	volume := int(velocity)
	if r.volume >= 0 {
		volume = r.volume
	}
	note := cacophony.NewNote(int(key), r.beat, r.length, volume)
	r.track.AddNote(note)
	r.held = append(r.held, key)
	return note
}

// NoteOff releases a held key. When the last one is released, the beat
// cursor advances by one note length; a note-off for a key that was never
// captured changes nothing.
func (r *Recorder) NoteOff(key uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, held := range r.held {
		if held == key {
			r.held = append(r.held[:i], r.held[i+1:]...)
			if len(r.held) == 0 {
				r.beat += r.length
			}
			return
		}
	}
}

// Listen connects the recorder to a MIDI input port. When monitor is not
// nil it is called synchronously with each captured note, so the caller
// can render and play it immediately. Returns a function that stops
// listening.
func Listen(in drivers.In, r *Recorder, monitor func(cacophony.Note)) (func(), error) {
	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteOn(&channel, &key, &velocity):
			note := r.NoteOn(key, velocity)
			if monitor != nil {
				monitor(note)
			}
		case msg.GetNoteOff(&channel, &key, &velocity):
			r.NoteOff(key)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	return stop, nil
}
