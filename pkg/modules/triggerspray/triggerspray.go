// Package triggerspray scatters each incoming trigger across sixteen lanes,
// every lane firing after its own random delay.
package triggerspray

import (
	"github.com/grough/lilac-modules-vcv/pkg/dsp/scatter"
	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
)

// Slug identifies the model
const Slug = "TriggerSpray"

// ParamDelayTime is the maximum delay in seconds
const ParamDelayTime = 0

// Input IDs
const (
	InputTrigger = iota
	InputDelayTime
)

// OutputTrigger carries one trigger per lane
const OutputTrigger = 0

var ports = port.NewBuilder().
	Input("Trigger").
	Input("Delay time").
	Output("Trigger").
	MustBuild()

var _ module.Module = (*TriggerSpray)(nil)

// TriggerSpray is the sixteen-lane trigger scatter module
type TriggerSpray struct {
	*module.Base
	in    trigger.Boolean
	burst *scatter.Burst
}

// New creates the module with no delay
func New() *TriggerSpray {
	m := &TriggerSpray{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Trigger Spray",
			Description: "Scatters a trigger over sixteen random delays",
			Tags:        []string{"Random", "Polyphonic"},
		}, ports, 0),
		burst: scatter.New(),
	}

	m.Parameters().Add(
		param.TimeParameter(ParamDelayTime, "Max time", 0, 1, 0).Build(),
	)
	return m
}

// Process advances the burst and fires a new one on a rising trigger
func (m *TriggerSpray) Process(ctx *process.Context) {
	out := ctx.Output(OutputTrigger)
	out.SetChannels(port.MaxChannels)
	m.burst.Process(ctx.SampleTime, port.MaxChannels, out)

	if m.in.Process(ctx.Input(InputTrigger).Voltage(0) > 0) {
		m.burst.Fire(port.MaxChannels, maxDelay(ctx, ParamDelayTime, InputDelayTime))
	}
}

// maxDelay scales the time knob by the time input (10 V is unity) when it is patched
func maxDelay(ctx *process.Context, paramID uint32, inputID int) float32 {
	t := ctx.Param(paramID)
	if in := ctx.Input(inputID); in.IsConnected() {
		t *= in.Voltage(0) / utility.GateHigh
	}
	return t
}

// Reset disarms every lane
func (m *TriggerSpray) Reset() {
	m.ResetParameters()
	m.in.Reset()
	m.burst.Reset()
}

// Burst exposes the lane delays
func (m *TriggerSpray) Burst() *scatter.Burst {
	return m.burst
}
