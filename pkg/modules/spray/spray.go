// Package spray scatters each incoming trigger across a chosen number of
// voices with random delays.
package spray

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
const Slug = "Spray"

// Parameter IDs
const (
	ParamDelayTime = iota
	ParamVoices
	ParamBias
)

// Input IDs
const (
	InputTrigger = iota
	InputDelayTime
)

// OutputTrigger carries one trigger per voice
const OutputTrigger = 0

// DefaultVoices is the voice count before the knob is first read
const DefaultVoices = 4

// ParamDivision is the sample interval between reads of the voices knob
const ParamDivision = 1024

var ports = port.NewBuilder().
	Input("Trigger").
	Input("Time attenuator").
	Output("Poly trigger").
	MustBuild()

var _ module.Module = (*Spray)(nil)

// Spray is the voice-count trigger scatter module
type Spray struct {
	*module.Base

	in       trigger.Boolean
	burst    *scatter.Burst
	paramDiv *trigger.ClockDivider
	voices   int
}

// New creates the module with four voices
func New() *Spray {
	m := &Spray{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Spray",
			Description: "Scatters a trigger over random delays on several voices",
			Tags:        []string{"Random", "Polyphonic"},
		}, ports, 0),
		burst:    scatter.New(),
		paramDiv: trigger.NewClockDivider(ParamDivision),
		voices:   DefaultVoices,
	}

	m.Parameters().Add(
		param.TimeParameter(ParamDelayTime, "Max time", 0, 1, 0).Build(),
		param.CountParameter(ParamVoices, "Voices", 1, port.MaxChannels, DefaultVoices).Build(),
		param.New(ParamBias, "Bias").Range(1, 32).Default(1).Build(),
	)
	return m
}

// Process advances the burst and fires a new one when the summed trigger rises
func (m *Spray) Process(ctx *process.Context) {
	out := ctx.Output(OutputTrigger)
	if m.paramDiv.Process() {
		m.voices = int(ctx.Param(ParamVoices))
		out.SetChannels(m.voices)
	}

	m.burst.Process(ctx.SampleTime, m.voices, out)

	if m.in.Process(ctx.Input(InputTrigger).VoltageSum() > 0) {
		t := ctx.Param(ParamDelayTime)
		if in := ctx.Input(InputDelayTime); in.IsConnected() {
			t *= in.Voltage(0) / utility.GateHigh
		}
		m.burst.FireBiased(m.voices, t, ctx.Param(ParamBias))
	}
}

// Reset restores four voices and disarms every lane
func (m *Spray) Reset() {
	m.ResetParameters()
	m.in.Reset()
	m.burst.Reset()
	m.paramDiv.Reset()
	m.voices = DefaultVoices
}

// Voices returns the active voice count
func (m *Spray) Voices() int {
	return m.voices
}

// Burst exposes the lane delays
func (m *Spray) Burst() *scatter.Burst {
	return m.burst
}
