package cacophony

// Mix adds src sample-by-sample into dst starting at frameOffset frames.
// Sums outside [-1, 1] are clamped rather than wrapped, so overflowing
// polyphony distorts instead of corrupting the signal; the number of
// clamped samples is returned but clamping is never an error. The caller
// must make sure dst is long enough to hold src at the given offset.
func Mix(dst, src AudioBuffer, frameOffset int) (clamped int) {
	offset := frameOffset * NumChannels
	for i, v := range src {
		sum := dst[offset+i] + v
		if sum > 1 {
			sum = 1
			clamped++
		} else if sum < -1 {
			sum = -1
			clamped++
		}
		dst[offset+i] = sum
	}
	return clamped
}
