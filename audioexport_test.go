package cacophony_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/tversteeg/cacophony"
)

func TestRawPCM16ClampsAndConverts(t *testing.T) {
	buffer := cacophony.AudioBuffer{0, 0.5, 1.5, -1.5}
	raw, err := buffer.Raw(true)
	if err != nil {
		t.Fatalf("Raw failed: %v", err)
	}
	if len(raw) != 2*len(buffer) {
		t.Fatalf("got %v bytes, expected %v", len(raw), 2*len(buffer))
	}
	samples := make([]int16, len(buffer))
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, samples); err != nil {
		t.Fatalf("could not read back samples: %v", err)
	}
	if samples[0] != 0 || samples[1] != 16383 {
		t.Errorf("got %v, expected [0 16383 ...]", samples)
	}
	if samples[2] != 32767 || samples[3] != -32768 {
		t.Errorf("out-of-range samples should clamp, got %v", samples[2:])
	}
}

func TestWavHeaders(t *testing.T) {
	buffer := make(cacophony.AudioBuffer, 128)
	for _, pcm16 := range []bool{false, true} {
		wav, err := buffer.Wav(pcm16)
		if err != nil {
			t.Fatalf("Wav(%v) failed: %v", pcm16, err)
		}
		if !bytes.HasPrefix(wav, []byte("RIFF")) || !bytes.Equal(wav[8:12], []byte("WAVE")) {
			t.Errorf("Wav(%v): malformed header %v", pcm16, wav[:12])
		}
		headerLen := 58
		bytesPerSample := 4
		if pcm16 {
			headerLen = 44
			bytesPerSample = 2
		}
		if expected := headerLen + bytesPerSample*len(buffer); len(wav) != expected {
			t.Errorf("Wav(%v): got %v bytes, expected %v", pcm16, len(wav), expected)
		}
	}
}
