// Package accumulatorsingle is a one-group accumulator with a rate knob,
// a reset button and an option to keep the running sum across patch loads.
package accumulatorsingle

import (
	"github.com/viterin/vek/vek32"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
	"github.com/grough/lilac-modules-vcv/pkg/framework/state"
)

// Slug identifies the model
const Slug = "AccumulatorSingle"

// Parameter IDs
const (
	ParamRate = iota
	ParamReset
)

// Input IDs
const (
	InputRate = iota
	InputReset
)

// OutputSum is the only output
const OutputSum = 0

// RateScale is the input voltage that passes the knob rate through unchanged
const RateScale = 5.0

var ports = port.NewBuilder().
	Input("Rate attenuverter").
	Input("Reset").
	Output("Sum").
	MustBuild()

var _ module.Module = (*AccumulatorSingle)(nil)

// AccumulatorSingle integrates the rate knob, optionally scaled per lane by
// the rate input
type AccumulatorSingle struct {
	*module.Base

	sums        [port.MaxChannels]float32
	scratch     [port.MaxChannels]float32
	resetButton trigger.Boolean
	resets      [port.MaxChannels]trigger.Boolean

	// SaveSumWithPatch keeps the sums in saved state
	SaveSumWithPatch bool
}

// Data is the persisted module data
type Data struct {
	Sums             []float32 `json:"sums" yaml:"sums"`
	SaveSumWithPatch *bool     `json:"saveSumWithPatch,omitempty" yaml:"saveSumWithPatch,omitempty"`
}

// New creates the module with the rate knob at zero
func New() *AccumulatorSingle {
	m := &AccumulatorSingle{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Accumulator Single",
			Description: "Integrates a rate knob into a running total",
			Tags:        []string{"Polyphonic", "Utility"},
		}, ports, 0),
		SaveSumWithPatch: true,
	}

	m.Parameters().Add(
		param.RateParameter(ParamRate, "Growth rate", -10, 10, 0).Build(),
		param.ButtonParameter(ParamReset, "Reset").Build(),
	)
	m.State().SetDataPersister(m)
	return m
}

// Process advances the sums by one sample
func (m *AccumulatorSingle) Process(ctx *process.Context) {
	rate := ctx.Input(InputRate)
	reset := ctx.Input(InputReset)
	out := ctx.Output(OutputSum)

	out.SetChannels(rate.Channels())

	if out.IsConnected() {
		knob := ctx.Param(ParamRate) * ctx.SampleTime
		if rate.IsConnected() {
			n := rate.Channels()
			delta := vek32.MulNumber_Into(m.scratch[:n], rate.Lanes(), knob/RateScale)
			vek32.Add_Inplace(m.sums[:n], delta)
			for c := 0; c < n; c++ {
				out.SetVoltage(c, m.sums[c])
			}
		} else {
			m.sums[0] += knob
			out.SetVoltage(0, m.sums[0])
		}
	}

	if m.resetButton.Process(ctx.Param(ParamReset) > 0) {
		m.clear()
	}

	if reset.IsPolyphonic() {
		for c := 0; c < reset.Channels(); c++ {
			if m.resets[c].Process(reset.Voltage(c) > 0) {
				m.sums[c] = 0
			}
		}
	} else if m.resets[0].Process(reset.Voltage(0) > 0) {
		m.clear()
	}
}

func (m *AccumulatorSingle) clear() {
	m.sums = [port.MaxChannels]float32{}
}

// Reset zeros the sums and edge history. The save option is kept.
func (m *AccumulatorSingle) Reset() {
	m.clear()
	m.resetButton.Reset()
	m.resets = [port.MaxChannels]trigger.Boolean{}
	m.ResetParameters()
}

// Sum returns the running sum of lane c
func (m *AccumulatorSingle) Sum(c int) float32 {
	if c < 0 || c >= port.MaxChannels {
		return 0
	}
	return m.sums[c]
}

// SaveData implements state.DataPersister
func (m *AccumulatorSingle) SaveData() any {
	sums := make([]float32, port.MaxChannels)
	copy(sums, m.sums[:])
	save := m.SaveSumWithPatch
	return Data{Sums: sums, SaveSumWithPatch: &save}
}

// LoadData implements state.DataPersister. A missing option counts as on.
// Sums are restored only when the option is on; otherwise they start at zero.
func (m *AccumulatorSingle) LoadData(decode state.Decoder) error {
	var d Data
	if err := decode(&d); err != nil {
		return err
	}

	m.SaveSumWithPatch = d.SaveSumWithPatch == nil || *d.SaveSumWithPatch
	m.clear()
	if m.SaveSumWithPatch {
		copy(m.sums[:], d.Sums)
	}
	return nil
}
