// Package oto adapts the ebitengine/oto/v3 audio device to the
// cacophony.AudioContext interface, for playing rendered buffers.
package oto

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/tversteeg/cacophony"
)

type (
	Context struct {
		ctx *oto.Context
	}

	Output struct {
		player *oto.Player
		pipe   *io.PipeWriter
	}
)

// NewContext acquires the audio device with the process-wide sample
// format and waits until it is ready.
func NewContext() (*Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cacophony.SampleRate,
		ChannelCount: cacophony.NumChannels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx}, nil
}

func (c *Context) Output() cacophony.AudioSink {
	reader, writer := io.Pipe()
	player := c.ctx.NewPlayer(reader)
	player.Play()
	return &Output{player: player, pipe: writer}
}

// Close is a no-op; an oto context cannot be released, it lives for the
// rest of the process.
func (c *Context) Close() error {
	return nil
}

// WriteAudio queues the buffer for playback. Blocks when writing faster
// than the device plays.
func (o *Output) WriteAudio(buffer cacophony.AudioBuffer) error {
	if err := binary.Write(o.pipe, binary.LittleEndian, []float32(buffer)); err != nil {
		return fmt.Errorf("cannot write to player: %w", err)
	}
	return nil
}

// Close drains the remaining audio before releasing the player.
func (o *Output) Close() error {
	o.pipe.Close()
	for o.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
