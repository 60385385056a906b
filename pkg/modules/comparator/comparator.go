// Package comparator compares a knob or input A against input B on every lane.
package comparator

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/compare"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
	"github.com/grough/lilac-modules-vcv/pkg/framework/state"
)

// Slug identifies the model
const Slug = "Comparator"

// ParamA is the A knob, used while input A is unpatched
const ParamA = 0

// Input IDs
const (
	InputA = iota
	InputB
)

// Output IDs
const (
	OutputLess = iota
	OutputEqual
	OutputGreater
)

var ports = port.NewBuilder().
	Input("A").
	Input("B").
	Output("A < B").
	Output("A = B").
	Output("A > B").
	MustBuild()

var _ module.Module = (*Comparator)(nil)

// Comparator is the three-way comparator module
type Comparator struct {
	*module.Base
	unit *compare.Unit
}

// Data is the persisted module data
type Data struct {
	Tolerance *float32 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// New creates a comparator with the narrowest equal band
func New() *Comparator {
	m := &Comparator{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Comparator",
			Description: "Compares two voltages",
			Tags:        []string{"Logic", "Polyphonic"},
		}, ports, 0),
		unit: compare.NewUnit(),
	}

	m.Parameters().Add(
		param.VoltageParameter(ParamA, "A", -10, 10, 0).Build(),
	)
	m.State().SetDataPersister(m)
	return m
}

// Process compares one sample
func (m *Comparator) Process(ctx *process.Context) {
	m.unit.Process(ctx.Param(ParamA),
		ctx.Input(InputA), ctx.Input(InputB),
		ctx.Output(OutputLess), ctx.Output(OutputEqual), ctx.Output(OutputGreater))
}

// Reset restores the knob and the default tolerance
func (m *Comparator) Reset() {
	m.ResetParameters()
	m.unit.Tolerance = compare.DefaultTolerance
}

// Tolerance returns the half-width of the equal band in volts
func (m *Comparator) Tolerance() float32 {
	return m.unit.Tolerance
}

// SetTolerance sets the half-width of the equal band in volts
func (m *Comparator) SetTolerance(tolerance float32) error {
	if tolerance < 0 || math32.IsNaN(tolerance) || math32.IsInf(tolerance, 0) {
		return fmt.Errorf("invalid tolerance %v", tolerance)
	}
	m.unit.Tolerance = tolerance
	return nil
}

// SaveData implements state.DataPersister
func (m *Comparator) SaveData() any {
	tolerance := m.unit.Tolerance
	return Data{Tolerance: &tolerance}
}

// LoadData implements state.DataPersister
func (m *Comparator) LoadData(decode state.Decoder) error {
	var d Data
	if err := decode(&d); err != nil {
		return err
	}
	if d.Tolerance == nil {
		m.unit.Tolerance = compare.DefaultTolerance
		return nil
	}
	return m.SetTolerance(*d.Tolerance)
}
