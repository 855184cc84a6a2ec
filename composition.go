package cacophony

import (
	"errors"
	"fmt"
	"sync"
)

// Composition is the unit of rendering: a tempo plus the tracks played at
// it. The composition owns its tracks.
type Composition struct {
	BPM    int
	Tracks []*Track
}

func NewComposition(bpm int, tracks ...*Track) *Composition {
	return &Composition{BPM: bpm, Tracks: tracks}
}

// Copy makes a deep copy of the composition; see Track.Copy for the
// synthesizer caveat.
func (c *Composition) Copy() *Composition {
	tracks := make([]*Track, len(c.Tracks))
	for i, t := range c.Tracks {
		tracks[i] = t.Copy()
	}
	return &Composition{BPM: c.BPM, Tracks: tracks}
}

func (c *Composition) Validate() error {
	if c.BPM < 1 {
		return fmt.Errorf("%w: %v", ErrInvalidTempo, c.BPM)
	}
	for i, t := range c.Tracks {
		if t.Synth == nil {
			return fmt.Errorf("track %v has no synthesizer", i)
		}
	}
	return nil
}

// Render renders every track at the composition's tempo and sums the
// results into the final buffer, sized to the longest track. Tracks render
// concurrently: no track shares its synthesizer with another, so the only
// synchronization point is the summation, which runs in track order to
// keep the output deterministic. Tracks without notes contribute a
// zero-length buffer and do not affect the final length. Per-track
// failures are reported together but leave the buffer shape intact.
func (c *Composition) Render() (AudioBuffer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	buffers := make([]AudioBuffer, len(c.Tracks))
	errs := make([]error, len(c.Tracks))
	var wg sync.WaitGroup
	wg.Add(len(c.Tracks))
	for i, track := range c.Tracks {
		i, track := i, track
		go func() {
			defer wg.Done()
			buffers[i], errs[i] = track.Render(c.BPM)
		}()
	}
	wg.Wait()
	var frames int
	for _, b := range buffers {
		if f := b.NumFrames(); f > frames {
			frames = f
		}
	}
	buffer := make(AudioBuffer, frames*NumChannels)
	for _, b := range buffers {
		Mix(buffer, b, 0)
	}
	for i, err := range errs {
		if err != nil {
			errs[i] = fmt.Errorf("track %v: %w", i, err)
		}
	}
	return buffer, errors.Join(errs...)
}
