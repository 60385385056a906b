// Package pitchgate turns triggers into gates whose length is one period of
// a V/oct pitch.
package pitchgate

import (
	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
	"github.com/grough/lilac-modules-vcv/pkg/framework/debug"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
)

// Slug identifies the model
const Slug = "PitchGate"

// Input IDs
const (
	InputPitch1 = iota
	InputTrig1
	InputPitch2
	InputTrig2
)

// Output IDs
const (
	OutputGate1 = iota
	OutputGate2
)

// Pairs is the number of pitch/trigger/gate sections
const Pairs = 2

// Clock divisions in samples
const (
	ChannelDivision = 1024
	LogDivision     = 8192
)

var ports = port.NewBuilder().
	Input("Pitch 1").
	Input("Trigger 1").
	Input("Pitch 2").
	Input("Trigger 2").
	Output("Gate 1").
	Output("Gate 2").
	MustBuild()

// Lane converts one trigger lane into a pitch-period gate
type Lane struct {
	schmitt trigger.Schmitt
	gate    trigger.TimedGate
}

// Process returns whether the gate is open after this sample
func (l *Lane) Process(deltaTime, voltsPerOctave, trig float32) bool {
	if l.schmitt.Process(trig) {
		l.gate.Trigger(1 / utility.PitchFrequency(voltsPerOctave))
	}
	return l.gate.Process(deltaTime)
}

// Reset closes the gate and forgets the trigger state
func (l *Lane) Reset() {
	l.schmitt.Reset()
	l.gate.Reset()
}

type section struct {
	pitch, trig, gate int
	lanes             [port.MaxChannels]Lane
	channels          int
}

var _ module.Module = (*PitchGate)(nil)

// PitchGate is the two-section pitch-to-gate module
type PitchGate struct {
	*module.Base

	sections   [Pairs]section
	channelDiv *trigger.ClockDivider
	logDiv     *trigger.ClockDivider
}

// New creates the module with one lane per section
func New() *PitchGate {
	m := &PitchGate{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Pitch Gate",
			Description: "Gates as long as one period of a pitch",
			Tags:        []string{"Polyphonic", "Utility"},
		}, ports, 0),
		channelDiv: trigger.NewClockDivider(ChannelDivision),
		logDiv:     trigger.NewClockDivider(LogDivision),
	}
	m.sections[0].pitch, m.sections[0].trig, m.sections[0].gate = InputPitch1, InputTrig1, OutputGate1
	m.sections[1].pitch, m.sections[1].trig, m.sections[1].gate = InputPitch2, InputTrig2, OutputGate2
	m.resetChannels()
	return m
}

func (m *PitchGate) resetChannels() {
	for i := range m.sections {
		m.sections[i].channels = 1
	}
}

// Process advances both sections by one sample
func (m *PitchGate) Process(ctx *process.Context) {
	update := m.channelDiv.Process()

	for i := range m.sections {
		s := &m.sections[i]
		pitch, trig, out := ctx.Input(s.pitch), ctx.Input(s.trig), ctx.Output(s.gate)

		if update {
			s.channels = max(pitch.Channels(), trig.Channels())
			out.SetChannels(s.channels)
		}
		for c := 0; c < s.channels; c++ {
			open := s.lanes[c].Process(ctx.SampleTime, pitch.Voltage(c), trig.Voltage(c))
			out.SetVoltage(c, utility.Gate(open))
		}
	}

	if m.logDiv.Process() && m.Logger().Enabled(debug.LogLevelDebug) {
		s := &m.sections[0]
		m.Logger().Debugw("gate",
			"channels", s.channels,
			"period", s.lanes[0].gate.Duration(),
			"pitch", ctx.Input(s.pitch).Voltage(0))
	}
}

// Reset closes every gate
func (m *PitchGate) Reset() {
	for i := range m.sections {
		for c := range m.sections[i].lanes {
			m.sections[i].lanes[c].Reset()
		}
	}
	m.channelDiv.Reset()
	m.logDiv.Reset()
	m.resetChannels()
}

// Channels returns the lane count of section i
func (m *PitchGate) Channels(i int) int {
	return m.sections[i].channels
}
