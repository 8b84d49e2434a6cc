// Package chime plays a short sound when an object crosses the finish.
// The sound is either synthesized or decoded from a file, and played
// through a single shared oto context.
package chime

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Chime plays a preloaded clip. Overlapping plays restart the sound.
type Chime struct {
	clip   Clip
	volume float64

	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	closed bool
}

// Load prepares a chime from path, or the synthesized default when path
// is empty. The audio device is opened here so failures surface at
// startup.
func Load(path string, volume float64) (*Chime, error) {
	clip := Synthesize()
	if path != "" {
		var err error
		clip, err = Decode(path)
		if err != nil {
			return nil, fmt.Errorf("loading chime %s: %w", path, err)
		}
	}
	if clip.Channels < 1 || clip.SampleRate < 1 {
		return nil, fmt.Errorf("loading chime %s: no audio data", path)
	}

	ctx, err := initOto(clip.SampleRate, clip.Channels)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	return &Chime{clip: clip, volume: volume, ctx: ctx}, nil
}

// Play starts the clip from the beginning.
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.player != nil {
		if err := c.player.Close(); err != nil {
			log.Printf("chime: closing player: %v", err)
		}
	}
	c.player = c.ctx.NewPlayer(bytes.NewReader(c.clip.PCM))
	c.player.SetVolume(c.volume)
	c.player.Play()
}

// Close stops playback. Further Play calls are ignored.
func (c *Chime) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.player != nil {
		err := c.player.Close()
		c.player = nil
		return err
	}
	return nil
}
