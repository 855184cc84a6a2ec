package cacophony

import "math"

// SecondsPerBeat returns the real-time length of one beat at the given
// tempo. The caller is responsible for rejecting bpm <= 0 before calling.
func SecondsPerBeat(bpm int) float64 {
	return 60.0 / float64(bpm)
}

// BeatsToSeconds converts a duration in beats to seconds at the given
// tempo. Linear in beats, inversely proportional to bpm.
func BeatsToSeconds(bpm int, beats float64) float64 {
	return SecondsPerBeat(bpm) * beats
}

// BeatsToFrames converts a duration in beats to a whole number of sample
// frames, rounding to the nearest frame. This is the only place beat
// durations are quantized.
func BeatsToFrames(bpm int, beats float64) int {
	return SecondsToFrames(BeatsToSeconds(bpm, beats))
}

// SecondsToFrames converts seconds to a whole number of sample frames,
// rounding to the nearest frame.
func SecondsToFrames(seconds float64) int {
	return int(math.Round(seconds * SampleRate))
}
