//go:build headless

package probe

import (
	"context"
	"errors"
)

// ErrHeadless is returned by NewPlayer in builds without an audio backend
var ErrHeadless = errors.New("audio playback is not available in headless builds")

// Player is unavailable in headless builds
type Player struct{}

// NewPlayer always fails in headless builds
func NewPlayer(sampleRate int) (*Player, error) {
	return nil, ErrHeadless
}

// Play always fails in headless builds
func (p *Player) Play(ctx context.Context, col Column, rate int) error {
	return ErrHeadless
}

// Close does nothing
func (p *Player) Close() error {
	return nil
}
