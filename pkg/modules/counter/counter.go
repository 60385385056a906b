// Package counter opens a gate on the first clock and closes it after a set
// number of clocks, marking each completed cycle with a trigger.
package counter

import (
	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
	"github.com/grough/lilac-modules-vcv/pkg/framework/state"
)

// Slug identifies the model
const Slug = "Counter"

// ParamCount is the number of clocks per cycle
const ParamCount = 0

// Input IDs
const (
	InputClock = iota
	InputReset
)

// Output IDs
const (
	OutputGate = iota
	OutputEndOfCycle
)

// ParamDivision is the sample interval between reads of the count knob
const ParamDivision = 1024

var ports = port.NewBuilder().
	Input("Clock").
	Input("Reset").
	Output("Gate").
	Output("End of cycle").
	MustBuild()

var _ module.Module = (*Counter)(nil)

// Counter is the clock counter module
type Counter struct {
	*module.Base

	paramDiv   *trigger.ClockDivider
	clock      trigger.Boolean
	reset      trigger.Boolean
	endOfCycle trigger.Pulse

	gate  bool
	armed bool
	limit int
	count int

	// AutoReset re-arms the counter after every cycle. When off, a cycle
	// completes once and waits for a reset.
	AutoReset bool
}

// Data is the persisted module data
type Data struct {
	AutoReset bool `json:"autoReset" yaml:"autoReset"`
}

// New creates an armed counter
func New() *Counter {
	m := &Counter{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Counter",
			Description: "Gate that closes after a number of clocks",
			Tags:        []string{"Clock modulator", "Logic"},
		}, ports, 0),
		paramDiv: trigger.NewClockDivider(ParamDivision),
		armed:    true,
	}

	m.Parameters().Add(
		param.CountParameter(ParamCount, "Count", 1, 128, 5).Build(),
	)
	m.State().SetDataPersister(m)
	return m
}

// Process advances the counter by one sample
func (m *Counter) Process(ctx *process.Context) {
	if m.paramDiv.Process() || m.limit == 0 {
		m.limit = int(ctx.Param(ParamCount))
	}

	if m.reset.Process(ctx.Input(InputReset).Voltage(0) > 0) {
		m.count = 0
		m.gate = false
		m.armed = true
	}

	if m.clock.Process(ctx.Input(InputClock).VoltageSum() > 0) && m.armed {
		m.gate = true
		m.count++
		if m.count >= m.limit {
			m.count = 0
			m.gate = false
			m.armed = m.AutoReset
			m.endOfCycle.Trigger()
		}
	}

	ctx.Output(OutputGate).SetVoltage(0, utility.Gate(m.gate))
	ctx.Output(OutputEndOfCycle).SetVoltage(0, utility.Gate(m.endOfCycle.Process(ctx.SampleTime)))
}

// Reset re-arms the counter and restores the count knob
func (m *Counter) Reset() {
	m.ResetParameters()
	m.paramDiv.Reset()
	m.clock.Reset()
	m.reset.Reset()
	m.endOfCycle.Reset()
	m.gate = false
	m.armed = true
	m.limit = 0
	m.count = 0
}

// Count returns the clocks counted in the current cycle
func (m *Counter) Count() int {
	return m.count
}

// Limit returns the last count knob reading
func (m *Counter) Limit() int {
	return m.limit
}

// IsArmed reports whether the counter responds to clocks
func (m *Counter) IsArmed() bool {
	return m.armed
}

// SaveData implements state.DataPersister
func (m *Counter) SaveData() any {
	return Data{AutoReset: m.AutoReset}
}

// LoadData implements state.DataPersister
func (m *Counter) LoadData(decode state.Decoder) error {
	var d Data
	if err := decode(&d); err != nil {
		return err
	}
	m.AutoReset = d.AutoReset
	return nil
}
