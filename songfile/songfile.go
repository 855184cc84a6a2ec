// Package songfile reads compositions from .yml or .json score files and
// builds the synthesizer of each track from its synth section.
package songfile

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tversteeg/cacophony"
	"github.com/tversteeg/cacophony/chiptune"
	"github.com/tversteeg/cacophony/clatter"
	"github.com/tversteeg/cacophony/soundfont"
)

type (
	// File is the on-disk representation of a composition.
	File struct {
		BPM    int     `yaml:"bpm" json:"bpm"`
		Tracks []Track `yaml:"tracks" json:"tracks"`
	}

	Track struct {
		Synth Synth            `yaml:"synth" json:"synth"`
		Notes []cacophony.Note `yaml:"notes" json:"notes"`
	}

	// Synth selects and configures the backend of one track.
	Synth struct {
		Kind      string `yaml:"kind" json:"kind"`
		Waveform  string `yaml:"waveform,omitempty" json:"waveform,omitempty"`   // chiptune only
		SoundFont string `yaml:"soundfont,omitempty" json:"soundfont,omitempty"` // path to the .sf2 file
		Bank      int    `yaml:"bank,omitempty" json:"bank,omitempty"`
		Preset    int    `yaml:"preset,omitempty" json:"preset,omitempty"`
	}
)

// Parse reads a score from bytes, trying .json first and .yml second, the
// same way sointu song files are sniffed by content rather than extension.
func Parse(data []byte) (*File, error) {
	var f File
	if errJSON := json.Unmarshal(data, &f); errJSON != nil {
		if errYaml := yaml.Unmarshal(data, &f); errYaml != nil {
			return nil, fmt.Errorf("the song could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return &f, nil
}

// Read loads a score file from disk.
func Read(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read file %v: %v", filename, err)
	}
	return Parse(data)
}

// Yaml returns the file in its yaml form, for saving captured or edited
// scores.
func (f *File) Yaml() ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("could not marshal song: %v", err)
	}
	return data, nil
}

// Composition builds the renderable composition: one track per file
// track, each with its own freshly constructed synthesizer. SoundFont
// backends are loaded here, so a missing or corrupt .sf2 fails the build
// instead of every note render.
func (f *File) Composition() (*cacophony.Composition, error) {
	tracks := make([]*cacophony.Track, len(f.Tracks))
	for i, t := range f.Tracks {
		backend, err := t.Synth.Backend()
		if err != nil {
			return nil, fmt.Errorf("track %v: %w", i, err)
		}
		tracks[i] = cacophony.NewTrack(cacophony.NewSynthesizer(backend), t.Notes...)
	}
	return cacophony.NewComposition(f.BPM, tracks...), nil
}

// Backend constructs the backend this synth section describes.
func (s Synth) Backend() (cacophony.Backend, error) {
	switch s.Kind {
	case "", "chiptune":
		waveform, err := chiptune.ParseWaveform(s.Waveform)
		if err != nil {
			return nil, err
		}
		return chiptune.New(waveform), nil
	case "soundfont":
		backend := soundfont.New()
		backend.SetInstrument(s.Bank, s.Preset)
		if err := backend.Load(s.SoundFont); err != nil {
			return nil, err
		}
		return backend, nil
	case "clatter":
		return clatter.New(), nil
	}
	return nil, fmt.Errorf("%w: unknown synth kind %q", cacophony.ErrUnsupportedParameter, s.Kind)
}
