// Package chiptune is a waveform backend: it renders notes as classic
// fixed-shape oscillator tones (sine, sawtooth, square, triangle, pulse).
package chiptune

import (
	"fmt"
	"math"
	"strings"

	"github.com/tversteeg/cacophony"
)

// Waveform enumerates the oscillator shapes the backend can produce.
type Waveform int

const (
	Sine Waveform = iota
	Sawtooth
	Square
	Triangle
	Pulse
	numWaveforms
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Sawtooth:
		return "sawtooth"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Pulse:
		return "pulse"
	}
	return "unknown"
}

// ParseWaveform maps a waveform name from a score file to a Waveform. An
// empty name defaults to a sine.
func ParseWaveform(name string) (Waveform, error) {
	switch strings.ToLower(name) {
	case "", "sine":
		return Sine, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	case "square":
		return Square, nil
	case "triangle":
		return Triangle, nil
	case "pulse":
		return Pulse, nil
	}
	return 0, fmt.Errorf("%w: unknown waveform %q", cacophony.ErrUnsupportedParameter, name)
}

// high fraction of the pulse wave period
const pulseDuty = 0.25

// attack/release ramp length, to avoid clicks at note boundaries
const rampSeconds = 0.002

// Chiptune generates one waveform at the note's frequency, with the
// amplitude taken from the note volume. The oscillator phase carries over
// from note to note so back-to-back notes stay click-free; the phase
// belongs to this instance alone and must not be shared across tracks.
type Chiptune struct {
	waveform Waveform
	phase    float64
}

func New(waveform Waveform) *Chiptune {
	return &Chiptune{waveform: waveform}
}

func (c *Chiptune) Generate(note cacophony.Note, duration float64) (cacophony.AudioBuffer, error) {
	if c.waveform < 0 || c.waveform >= numWaveforms {
		return nil, fmt.Errorf("%w: waveform %v", cacophony.ErrUnsupportedParameter, int(c.waveform))
	}
	frames := cacophony.SecondsToFrames(duration)
	buffer := make(cacophony.AudioBuffer, frames*cacophony.NumChannels)
	step := note.Frequency() / cacophony.SampleRate
	gain := note.Amplitude()
	ramp := int(math.Floor(rampSeconds * cacophony.SampleRate))
	if 2*ramp > frames {
		ramp = frames / 2
	}
	for i := 0; i < frames; i++ {
		envelope := 1.0
		if i < ramp {
			envelope = float64(i) / float64(ramp)
		} else if left := frames - i; left <= ramp {
			envelope = float64(left) / float64(ramp)
		}
		sample := float32(c.sample() * gain * envelope)
		buffer[2*i] = sample
		buffer[2*i+1] = sample
		c.phase += step
		c.phase -= math.Floor(c.phase)
	}
	return buffer, nil
}

func (c *Chiptune) sample() float64 {
	phase := c.phase
	switch c.waveform {
	case Sine:
		return math.Sin(2 * math.Pi * phase)
	case Sawtooth:
		return 2*phase - 1
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	case Pulse:
		if phase < pulseDuty {
			return 1
		}
		return -1
	}
	return 0
}
