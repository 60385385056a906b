// Package accumulate integrates polyphonic rate signals into running sums
// with edge-triggered resets.
package accumulate

import (
	"github.com/viterin/vek/vek32"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

// Group is one accumulating channel group.
//
// The tracked width only grows with the rate signal. It shrinks when a
// monophonic reset clears everything or when the last active lane is reset.
type Group struct {
	width   int
	sums    [port.MaxChannels]float32
	resets  [port.MaxChannels]trigger.Boolean
	scratch [port.MaxChannels]float32
}

// State is the persisted form of a Group
type State struct {
	Channels int       `json:"channels" yaml:"channels"`
	Sums     []float32 `json:"sums" yaml:"sums"`
}

// Process advances the group by one sample of length dt
func (g *Group) Process(rate, reset, out *port.Port, dt float32) {
	if n := rate.Channels(); n > g.width {
		g.width = min(n, port.MaxChannels)
	}
	if g.width == 0 {
		return
	}

	out.SetChannels(g.width)

	// Lanes past the rate width read 0 V and leave their sums unchanged
	if n := min(rate.Channels(), g.width); n > 0 {
		delta := vek32.MulNumber_Into(g.scratch[:n], rate.Lanes()[:n], dt)
		vek32.Add_Inplace(g.sums[:n], delta)
	}
	for c := 0; c < g.width; c++ {
		out.SetVoltage(c, g.sums[c])
	}

	if reset.Channels() <= 1 {
		if g.resets[0].Process(reset.Voltage(0) > 0) {
			g.clear()
		}
		return
	}

	for c := 0; c < reset.Channels(); c++ {
		if g.resets[c].Process(reset.Voltage(c) > 0) {
			g.sums[c] = 0
			if c == g.width-1 {
				g.width--
			}
		}
	}
}

func (g *Group) clear() {
	g.sums = [port.MaxChannels]float32{}
	g.width = 0
}

// Reset zeros every sum, the width and the edge history
func (g *Group) Reset() {
	g.clear()
	g.resets = [port.MaxChannels]trigger.Boolean{}
}

// Width returns the number of tracked lanes
func (g *Group) Width() int {
	return g.width
}

// Sum returns the running sum of lane c
func (g *Group) Sum(c int) float32 {
	if c < 0 || c >= port.MaxChannels {
		return 0
	}
	return g.sums[c]
}

// Sums returns the tracked lanes
func (g *Group) Sums() []float32 {
	return g.sums[:g.width]
}

// State returns the width and the sums of the tracked lanes
func (g *Group) State() State {
	sums := make([]float32, g.width)
	copy(sums, g.sums[:g.width])
	return State{Channels: g.width, Sums: sums}
}

// SetState restores a saved group. The width is clamped to the lane range
// and lanes the state does not cover are zeroed. Edge history is kept.
func (g *Group) SetState(s State) {
	g.width = min(max(s.Channels, 0), port.MaxChannels)
	g.sums = [port.MaxChannels]float32{}
	copy(g.sums[:], s.Sums)
	for c := g.width; c < port.MaxChannels; c++ {
		g.sums[c] = 0
	}
}
