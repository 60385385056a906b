// Package scatter fans one trigger out into a burst of randomly delayed
// triggers, one per lane.
package scatter

import (
	"github.com/chewxy/math32"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

// Burst holds one armed delay and one pulse generator per lane.
// All lanes share the timer that restarts on Fire.
type Burst struct {
	timer  trigger.Timer
	pulses [port.MaxChannels]trigger.Pulse
	armed  [port.MaxChannels]bool
	delays [port.MaxChannels]float32
	random *utility.Random
}

// New creates an idle burst
func New() *Burst {
	return &Burst{random: utility.NewRandom()}
}

// Seed makes the delays reproducible
func (b *Burst) Seed(seed int64) {
	b.random.SetSeed(seed)
}

// Fire restarts the timer and arms lanes [0, n), each with a delay drawn
// uniformly from [0, maxDelay)
func (b *Burst) Fire(n int, maxDelay float32) {
	b.FireBiased(n, maxDelay, 1)
}

// FireBiased is Fire with the uniform draw raised to bias. A bias above 1
// crowds the delays toward zero.
func (b *Burst) FireBiased(n int, maxDelay, bias float32) {
	n = min(max(n, 0), port.MaxChannels)
	b.timer.Reset()
	for c := 0; c < n; c++ {
		u := b.random.Uniform()
		if bias != 1 {
			u = math32.Pow(u, bias)
		}
		b.armed[c] = true
		b.delays[c] = u * maxDelay
	}
}

// Process advances by dt and writes a 10 V trigger on lanes [0, n) of out.
// A lane triggers on the first sample its delay is exceeded.
func (b *Burst) Process(dt float32, n int, out *port.Port) {
	n = min(max(n, 0), port.MaxChannels)
	t := b.timer.Process(dt)
	for c := 0; c < n; c++ {
		if b.armed[c] && t > b.delays[c] {
			b.pulses[c].Trigger()
			b.armed[c] = false
		}
		out.SetVoltage(c, utility.Gate(b.pulses[c].Process(dt)))
	}
}

// Armed reports whether lane c is still waiting to trigger
func (b *Burst) Armed(c int) bool {
	if c < 0 || c >= port.MaxChannels {
		return false
	}
	return b.armed[c]
}

// Delay returns the delay drawn for lane c on the last Fire
func (b *Burst) Delay(c int) float32 {
	if c < 0 || c >= port.MaxChannels {
		return 0
	}
	return b.delays[c]
}

// Reset disarms every lane and cancels running pulses
func (b *Burst) Reset() {
	b.timer.Reset()
	b.pulses = [port.MaxChannels]trigger.Pulse{}
	b.armed = [port.MaxChannels]bool{}
	b.delays = [port.MaxChannels]float32{}
}
