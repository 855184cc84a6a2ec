// Package soundfont is an instrument-library backend: notes are played
// with the samples of a SoundFont2 file, so one track can sound like any
// General MIDI instrument. A font must be loaded before the first note.
package soundfont

import (
	"fmt"
	"os"

	"github.com/sinshu/go-meltysynth/meltysynth"

	"github.com/tversteeg/cacophony"
)

const renderBlock = 512

// SoundFont renders notes through a meltysynth synthesizer built from an
// externally loaded .sf2 file. The synthesizer state is owned by this
// instance; like every backend it must not be shared across tracks.
type SoundFont struct {
	channel int32
	bank    int32
	preset  int32
	synth   *meltysynth.Synthesizer
}

func New() *SoundFont {
	return &SoundFont{}
}

// Load reads and parses the SoundFont2 file at path. This is the only
// blocking I/O of the backend and happens once, before rendering; the file
// handle is released on every path, including parse failures. Loading
// again replaces the previous font.
func (s *SoundFont) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", cacophony.ErrResourceLoad, err)
	}
	defer file.Close()
	font, err := meltysynth.NewSoundFont(file)
	if err != nil {
		return fmt.Errorf("%w: parsing %v: %v", cacophony.ErrResourceLoad, path, err)
	}
	settings := meltysynth.NewSynthesizerSettings(cacophony.SampleRate)
	synth, err := meltysynth.NewSynthesizer(font, settings)
	if err != nil {
		return fmt.Errorf("%w: %v", cacophony.ErrResourceLoad, err)
	}
	s.synth = synth
	s.applyInstrument()
	return nil
}

// SetInstrument selects the bank and preset used for subsequent notes. It
// may be called before or after Load.
func (s *SoundFont) SetInstrument(bank, preset int) {
	s.bank, s.preset = int32(bank), int32(preset)
	if s.synth != nil {
		s.applyInstrument()
	}
}

func (s *SoundFont) applyInstrument() {
	// CC0 selects the bank, then a program change selects the preset
	s.synth.ProcessMidiMessage(s.channel, 0xB0, 0x00, s.bank)
	s.synth.ProcessMidiMessage(s.channel, 0xC0, s.preset, 0)
}

func (s *SoundFont) Generate(note cacophony.Note, duration float64) (cacophony.AudioBuffer, error) {
	if s.synth == nil {
		return nil, fmt.Errorf("%w: no SoundFont loaded", cacophony.ErrBackendNotReady)
	}
	frames := cacophony.SecondsToFrames(duration)
	buffer := make(cacophony.AudioBuffer, frames*cacophony.NumChannels)
	key := int32(*note.Pitch)
	s.synth.NoteOn(s.channel, key, int32(note.Volume))
	left := make([]float32, renderBlock)
	right := make([]float32, renderBlock)
	for pos := 0; pos < frames; pos += renderBlock {
		n := min(renderBlock, frames-pos)
		s.synth.Render(left[:n], right[:n])
		for i := 0; i < n; i++ {
			buffer[2*(pos+i)] = left[i]
			buffer[2*(pos+i)+1] = right[i]
		}
	}
	// the note's span is exactly duration long, so the release tail is not
	// part of the buffer; it bleeds into the next note on this track, which
	// is how a sustaining instrument behaves anyway
	s.synth.NoteOff(s.channel, key)
	return buffer, nil
}
