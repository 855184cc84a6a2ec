package cacophony

// The sample format is fixed process-wide and shared by every backend and
// the mixer; summing or concatenating buffers is only meaningful when all
// of them agree on it. Backends must never resample or change the channel
// count on their own.
const (
	SampleRate  = 44100
	NumChannels = 2
)

// AudioBuffer is interleaved stereo audio: even indices are the left
// channel, odd indices the right. Sample values are amplitudes in [-1, 1].
type AudioBuffer []float32

// NumFrames returns the playback length of the buffer in sample frames.
func (b AudioBuffer) NumFrames() int {
	return len(b) / NumChannels
}

// Seconds returns the playback length of the buffer in seconds.
func (b AudioBuffer) Seconds() float64 {
	return float64(b.NumFrames()) / SampleRate
}

type AudioSink interface {
	WriteAudio(buffer AudioBuffer) error
	Close() error
}

type AudioContext interface {
	Output() AudioSink
	Close() error
}
