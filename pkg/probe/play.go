//go:build !headless

package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// playPoll is how often Play checks whether playback has finished
const playPoll = 20 * time.Millisecond

// Player owns the process-wide audio context. Create one and reuse it for
// every column; the audio backend allows a single context per process.
type Player struct {
	ctx        *oto.Context
	sampleRate int
}

// NewPlayer opens the default audio device at sampleRate
func NewPlayer(sampleRate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	return &Player{ctx: otoCtx, sampleRate: sampleRate}, nil
}

// Play sends one recorded column to the device and blocks until it has played
// or ctx is cancelled. Columns recorded at another rate are resampled.
// Voltages are scaled so ±5 V is full scale.
func (p *Player) Play(ctx context.Context, col Column, rate int) error {
	if err := p.ctx.Err(); err != nil {
		return fmt.Errorf("audio context failed: %w", err)
	}

	player := p.ctx.NewPlayer(NewAudioReader(Resample(col.Values, rate, p.sampleRate)))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(playPoll)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return player.Err()
}

// Close suspends the device
func (p *Player) Close() error {
	return p.ctx.Suspend()
}
