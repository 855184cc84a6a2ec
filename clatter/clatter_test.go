package clatter_test

import (
	"math"
	"testing"

	"github.com/tversteeg/cacophony"
	"github.com/tversteeg/cacophony/clatter"
)

func TestGenerateLength(t *testing.T) {
	backend := clatter.New()
	for _, duration := range []float64{0.1, 0.5, 2} {
		buffer, err := backend.Generate(cacophony.NewNote(60, 0, 1, 100), duration)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if got, expected := buffer.NumFrames(), cacophony.SecondsToFrames(duration); got != expected {
			t.Errorf("%v s: %v frames, expected %v", duration, got, expected)
		}
	}
}

func TestGenerateDeterministicAcrossInstances(t *testing.T) {
	note := cacophony.NewNote(80, 0, 1, 100)
	first, err := clatter.New().Generate(note, 0.5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := clatter.New().Generate(note, 0.5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("fresh instances differ at sample %v: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestGenerateDecays(t *testing.T) {
	buffer, err := clatter.New().Generate(cacophony.NewNote(100, 0, 1, 127), 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	meanAbs := func(from, to int) float64 {
		var sum float64
		for i := from * cacophony.NumChannels; i < to*cacophony.NumChannels; i++ {
			sum += math.Abs(float64(buffer[i]))
		}
		return sum / float64((to-from)*cacophony.NumChannels)
	}
	frames := buffer.NumFrames()
	head := meanAbs(0, frames/10)
	tail := meanAbs(frames-frames/10, frames)
	if head <= tail*4 {
		t.Errorf("expected a decaying envelope, head %v vs tail %v", head, tail)
	}
}

func TestGenerateStaysInRange(t *testing.T) {
	buffer, err := clatter.New().Generate(cacophony.NewNote(127, 0, 1, 127), 0.5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i, v := range buffer {
		if v < -1 || v > 1 {
			t.Fatalf("sample %v = %v, out of [-1, 1]", i, v)
		}
	}
}
