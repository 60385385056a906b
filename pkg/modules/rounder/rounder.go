// Package rounder quantizes a polyphonic main signal to the voltages present
// on up to four source inputs.
package rounder

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/quantize"
	"github.com/grough/lilac-modules-vcv/pkg/dsp/trigger"
	"github.com/grough/lilac-modules-vcv/pkg/framework/debug"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
	"github.com/grough/lilac-modules-vcv/pkg/framework/state"
)

// Slug identifies the model
const Slug = "Rounder"

// Input IDs
const (
	InputSource1 = iota
	InputSource2
	InputSource3
	InputSource4
	InputMain
)

// OutputMain is the quantized output
const OutputMain = 0

// Sources is the number of source inputs
const Sources = 4

// LogDivision is the sample interval between debug reports
const LogDivision = 8192

var ports = port.NewBuilder().
	Input("Quantize source 1").
	Input("Quantize source 2").
	Input("Quantize source 3").
	Input("Quantize source 4").
	Input("Main").
	Output("Quantized").
	MustBuild()

var _ module.Module = (*Rounder)(nil)

// Rounder is the multi-source quantizer module
type Rounder struct {
	*module.Base

	router  *quantize.Router
	pool    quantize.Pool
	sources [Sources]*port.Port
	logDiv  *trigger.ClockDivider
}

// Data is the persisted router configuration
type Data struct {
	Mode  string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Min   *float32 `json:"min,omitempty" yaml:"min,omitempty"`
	Max   *float32 `json:"max,omitempty" yaml:"max,omitempty"`
	Order string   `json:"order,omitempty" yaml:"order,omitempty"`
}

// New creates a rounder in nearest mode
func New() *Rounder {
	m := &Rounder{
		Base: module.NewBase(module.Info{
			Slug:        Slug,
			Name:        "Rounder",
			Description: "Quantizes to the voltages on its source inputs",
			Tags:        []string{"Quantizer", "Polyphonic"},
		}, ports, 0),
		router: quantize.NewRouter(),
		logDiv: trigger.NewClockDivider(LogDivision),
	}
	m.State().SetDataPersister(m)
	return m
}

// Process quantizes one sample
func (m *Rounder) Process(ctx *process.Context) {
	for i := range m.sources {
		m.sources[i] = ctx.Input(InputSource1 + i)
	}
	m.pool.Gather(m.sources[:]...)

	main := ctx.Input(InputMain)
	m.router.Process(&m.pool, main, ctx.Output(OutputMain))

	if m.logDiv.Process() && m.Logger().Enabled(debug.LogLevelDebug) {
		m.Logger().Debugw("pool",
			"mode", m.router.Mode,
			"sources", m.pool.Len(),
			"channels", main.Channels())
	}
}

// Reset restores nearest mode and the default scan range
func (m *Rounder) Reset() {
	*m.router = *quantize.NewRouter()
	m.pool.Clear()
	m.logDiv.Reset()
}

// Router returns the quantization settings
func (m *Rounder) Router() *quantize.Router {
	return m.router
}

// SetMode selects the quantization algorithm
func (m *Rounder) SetMode(mode quantize.Mode) {
	m.router.Mode = mode
}

// SetScanRange sets the input range used in scan mode
func (m *Rounder) SetScanRange(min, max float32) error {
	if math32.IsNaN(min) || math32.IsNaN(max) {
		return fmt.Errorf("invalid scan range [%v, %v]", min, max)
	}
	m.router.Min, m.router.Max = min, max
	return nil
}

// SaveData implements state.DataPersister
func (m *Rounder) SaveData() any {
	lo, hi := m.router.Min, m.router.Max
	return Data{
		Mode:  m.router.Mode.String(),
		Min:   &lo,
		Max:   &hi,
		Order: m.router.Order.String(),
	}
}

// LoadData implements state.DataPersister. Missing fields take their defaults.
func (m *Rounder) LoadData(decode state.Decoder) error {
	var d Data
	if err := decode(&d); err != nil {
		return err
	}

	r := quantize.NewRouter()
	if d.Mode != "" {
		mode, err := quantize.ParseMode(d.Mode)
		if err != nil {
			return err
		}
		r.Mode = mode
	}
	order, err := quantize.ParseOrder(d.Order)
	if err != nil {
		return err
	}
	r.Order = order
	if d.Min != nil {
		r.Min = *d.Min
	}
	if d.Max != nil {
		r.Max = *d.Max
	}

	*m.router = *r
	return nil
}
