// Package clatter is a procedural backend producing decaying percussive
// noise. Unlike the other backends, pitch is not a frequency here: it is
// reinterpreted as the noise color, low pitches giving dark rumbles and
// high pitches bright hiss. Callers relying on pitch = frequency should
// not put melodic material on a clatter track.
package clatter

import (
	"math"

	"github.com/tversteeg/cacophony"
)

// decay target at the end of a note, -60 dB
const decayFloor = 0.001

// Clatter renders noise bursts. The generator state is owned by this
// instance; rendering the same notes on a fresh instance reproduces the
// same output.
type Clatter struct {
	seed  uint32
	state [2]float32 // one-pole lowpass state per channel
}

func New() *Clatter {
	return &Clatter{seed: 1}
}

func (c *Clatter) rand() float32 {
	c.seed *= 16007
	return float32(int32(c.seed)) / -2147483648.0
}

func (c *Clatter) Generate(note cacophony.Note, duration float64) (cacophony.AudioBuffer, error) {
	frames := cacophony.SecondsToFrames(duration)
	buffer := make(cacophony.AudioBuffer, frames*cacophony.NumChannels)
	// pitch 0-127 maps to a lowpass coefficient; squaring skews the range
	// towards dark timbres
	color := float32(*note.Pitch) / 127
	coeff := 0.02 + 0.98*color*color
	gain := float32(note.Amplitude())
	decayRate := math.Log(decayFloor) / float64(frames)
	for i := 0; i < frames; i++ {
		envelope := float32(math.Exp(decayRate * float64(i)))
		for channel := 0; channel < cacophony.NumChannels; channel++ {
			c.state[channel] += coeff * (c.rand() - c.state[channel])
			buffer[2*i+channel] = c.state[channel] * gain * envelope
		}
	}
	return buffer, nil
}
