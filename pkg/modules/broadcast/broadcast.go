// Package broadcast routes a live stereo signal between a broadcast send and a
// private monitor mix, with a crossfaded audition control and a click feed.
package broadcast

import (
	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
)

// Slug identifies the model
const Slug = "Broadcast"

// Parameter IDs
const (
	ParamClickListen = iota
	ParamAudition
)

// Input IDs
const (
	InputLive1 = iota
	InputLive2
	InputBroadcast1
	InputBroadcast2
	InputAudition
	InputClick
)

// Output IDs
const (
	OutputMonitor1 = iota
	OutputMonitor2
	OutputBroadcast1
	OutputBroadcast2
)

// Light IDs
const (
	LightAudition = iota
	LightAuditionLatch
	lightCount
)

// FadeRate is the audition crossfade speed in full swings per second
const FadeRate = 100

// LightDivision is the sample interval between light updates
const LightDivision = 16

var ports = port.NewBuilder().
	Input("Live 1").
	Input("Live 2").
	Input("Broadcast 1").
	Input("Broadcast 2").
	Input("Audition").
	Input("Click").
	Output("Monitor 1").
	Output("Monitor 2").
	Output("Broadcast 1").
	Output("Broadcast 2").
	MustBuild()

var channels = [2]struct{ live, bcastIn, monitor, bcastOut int }{
	{InputLive1, InputBroadcast1, OutputMonitor1, OutputBroadcast1},
	{InputLive2, InputBroadcast2, OutputMonitor2, OutputBroadcast2},
}

var _ module.Module = (*Broadcast)(nil)
var _ module.Bypasser = (*Broadcast)(nil)

// Broadcast is the live performance router module
type Broadcast struct {
	*module.Base
	fade     *utility.SlewLimiter
	lightDiv *trigger.ClockDivider
}

// New creates the module with the click at full level and audition off
func New() *Broadcast {
	m := &Broadcast{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Broadcast",
			Description: "Splits a live signal between broadcast and monitor",
			Tags:        []string{"Mixer", "Utility"},
		}, ports, lightCount),
		fade:     utility.NewSlewLimiter(FadeRate, FadeRate),
		lightDiv: trigger.NewClockDivider(LightDivision),
	}

	m.Parameters().Add(
		param.LevelParameter(ParamClickListen, "Click level", 1).Build(),
		param.SwitchParameter(ParamAudition, "Audition latch").Build(),
	)
	return m
}

// Process mixes one sample.
// The monitor hears the broadcast return, the click and the auditioned live
// signal. The broadcast send carries the live signal that is not auditioned.
func (m *Broadcast) Process(ctx *process.Context) {
	latch := ctx.Param(ParamAudition) > 0
	target := utility.Clamp(ctx.Input(InputAudition).Voltage(0)/utility.GateHigh+boolVolts(latch), 0, 1)
	audition := m.fade.Process(ctx.SampleTime, target)

	click := ctx.Input(InputClick).Voltage(0) * ctx.Param(ParamClickListen)

	for _, ch := range channels {
		live := ctx.Input(ch.live).Voltage(0)
		ctx.Output(ch.monitor).SetVoltage(0, audition*live+click+ctx.Input(ch.bcastIn).Voltage(0))
		ctx.Output(ch.bcastOut).SetVoltage(0, (1-audition)*live)
	}

	if m.lightDiv.Process() {
		m.SetLight(LightAudition, audition)
		m.SetLight(LightAuditionLatch, boolVolts(latch))
	}
}

// Bypass passes the live inputs to the broadcast outputs and the broadcast
// returns to the monitor outputs
func (m *Broadcast) Bypass(ctx *process.Context) {
	for _, ch := range channels {
		ctx.Output(ch.bcastOut).SetVoltage(0, ctx.Input(ch.live).Voltage(0))
		ctx.Output(ch.monitor).SetVoltage(0, ctx.Input(ch.bcastIn).Voltage(0))
	}
}

func boolVolts(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Reset settles the crossfade, darkens the lights and restores the controls
func (m *Broadcast) Reset() {
	m.ResetParameters()
	m.fade.Reset(0)
	m.lightDiv.Reset()
	m.SetLight(LightAudition, 0)
	m.SetLight(LightAuditionLatch, 0)
}

// Audition returns the current crossfade position, 0 for broadcast and 1 for monitor
func (m *Broadcast) Audition() float32 {
	return m.fade.Value()
}
