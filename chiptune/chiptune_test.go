package chiptune_test

import (
	"errors"
	"math"
	"testing"

	"github.com/tversteeg/cacophony"
	"github.com/tversteeg/cacophony/chiptune"
)

func TestParseWaveform(t *testing.T) {
	tests := []struct {
		name     string
		expected chiptune.Waveform
	}{
		{"", chiptune.Sine},
		{"sine", chiptune.Sine},
		{"saw", chiptune.Sawtooth},
		{"sawtooth", chiptune.Sawtooth},
		{"Square", chiptune.Square},
		{"triangle", chiptune.Triangle},
		{"pulse", chiptune.Pulse},
	}
	for _, test := range tests {
		got, err := chiptune.ParseWaveform(test.name)
		if err != nil {
			t.Errorf("ParseWaveform(%q) failed: %v", test.name, err)
		} else if got != test.expected {
			t.Errorf("ParseWaveform(%q) = %v, expected %v", test.name, got, test.expected)
		}
	}
	if _, err := chiptune.ParseWaveform("theremin"); !errors.Is(err, cacophony.ErrUnsupportedParameter) {
		t.Errorf("unknown waveform: got %v, expected ErrUnsupportedParameter", err)
	}
}

func TestGenerateLength(t *testing.T) {
	for _, waveform := range []chiptune.Waveform{chiptune.Sine, chiptune.Sawtooth, chiptune.Square, chiptune.Triangle, chiptune.Pulse} {
		backend := chiptune.New(waveform)
		for _, duration := range []float64{0.1, 0.5, 1.25} {
			buffer, err := backend.Generate(cacophony.NewNote(69, 0, 1, 100), duration)
			if err != nil {
				t.Fatalf("%v: Generate failed: %v", waveform, err)
			}
			if got, expected := buffer.NumFrames(), cacophony.SecondsToFrames(duration); got != expected {
				t.Errorf("%v, %v s: %v frames, expected %v", waveform, duration, got, expected)
			}
		}
	}
}

func TestGenerateUnknownWaveform(t *testing.T) {
	backend := chiptune.New(chiptune.Waveform(99))
	_, err := backend.Generate(cacophony.NewNote(60, 0, 1, 100), 0.5)
	if !errors.Is(err, cacophony.ErrUnsupportedParameter) {
		t.Errorf("got %v, expected ErrUnsupportedParameter", err)
	}
}

func TestGenerateAmplitudeFollowsVolume(t *testing.T) {
	for _, volume := range []int{0, 64, 127} {
		backend := chiptune.New(chiptune.Square)
		note := cacophony.NewNote(69, 0, 1, volume)
		buffer, err := backend.Generate(note, 0.5)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		limit := float32(note.Amplitude())
		var peak float32
		for _, v := range buffer {
			if abs := float32(math.Abs(float64(v))); abs > peak {
				peak = abs
			}
		}
		if peak > limit+1e-6 {
			t.Errorf("volume %v: peak %v exceeds %v", volume, peak, limit)
		}
		if volume > 0 && peak < limit/2 {
			t.Errorf("volume %v: peak %v, expected the square wave to reach near %v", volume, peak, limit)
		}
	}
}

func TestGenerateRampsAvoidClicks(t *testing.T) {
	backend := chiptune.New(chiptune.Square)
	buffer, err := backend.Generate(cacophony.NewNote(69, 0, 1, 127), 0.5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first := float32(math.Abs(float64(buffer[0]))); first > 0.01 {
		t.Errorf("first sample %v, expected a fade-in from silence", first)
	}
	if last := float32(math.Abs(float64(buffer[len(buffer)-1]))); last > 0.02 {
		t.Errorf("last sample %v, expected a fade-out to silence", last)
	}
}

func TestSineFrequency(t *testing.T) {
	backend := chiptune.New(chiptune.Sine)
	// A4 = 440 Hz: count rising zero crossings over one second
	buffer, err := backend.Generate(cacophony.NewNote(69, 0, 1, 127), 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	crossings := 0
	for i := cacophony.NumChannels; i < len(buffer); i += cacophony.NumChannels {
		if buffer[i-cacophony.NumChannels] < 0 && buffer[i] >= 0 {
			crossings++
		}
	}
	if crossings < 435 || crossings > 445 {
		t.Errorf("counted %v rising zero crossings in one second, expected about 440", crossings)
	}
}
