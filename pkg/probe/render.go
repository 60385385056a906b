package probe

import (
	"context"
	"fmt"
	"os"

	"github.com/grough/lilac-modules-vcv/pkg/framework/debug"
	"github.com/grough/lilac-modules-vcv/pkg/framework/module"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
	"github.com/grough/lilac-modules-vcv/pkg/framework/state"
	"github.com/grough/lilac-modules-vcv/pkg/plugin"
)

// cancelCheck is the frame interval between context checks
const cancelCheck = 4096

// Column is one recorded output lane
type Column struct {
	Name   string
	Values []float32
}

// Result holds a rendered scenario
type Result struct {
	Name       string
	Module     string
	SampleRate float32
	Frames     int
	Every      int
	Columns    []Column
	Lights     []float32
	Issues     []string
	Timing     debug.Measurement
}

// Column returns the column with the given name
func (r *Result) Column(name string) (Column, bool) {
	for _, col := range r.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

type binding struct {
	port   *port.Port
	signal Signal
}

type recording struct {
	name     string
	port     *port.Port
	lanes    [port.MaxChannels][]float32
	channels int
}

// Renderer renders scenarios against the models of one plugin
type Renderer struct {
	plugin   *plugin.Plugin
	logger   *debug.Logger
	profiler *debug.Profiler
}

// NewRenderer creates a renderer. A nil logger uses the default logger.
func NewRenderer(p *plugin.Plugin, logger *debug.Logger) *Renderer {
	if logger == nil {
		logger = debug.Default()
	}
	return &Renderer{
		plugin:   p,
		logger:   logger.With("probe"),
		profiler: debug.NewProfiler(64),
	}
}

// Profiler returns the timings of every render so far
func (r *Renderer) Profiler() *debug.Profiler {
	return r.profiler
}

// Render runs one scenario to completion or until ctx is cancelled
func (r *Renderer) Render(ctx context.Context, sc *Scenario) (*Result, error) {
	m, err := r.plugin.Create(sc.Module)
	if err != nil {
		return nil, err
	}
	m.Reset()

	if sc.State != "" {
		if err := loadState(m, sc.resolve(sc.State)); err != nil {
			return nil, err
		}
	}
	if err := applyParams(m, sc.Params); err != nil {
		return nil, err
	}
	bindings, err := bindInputs(m, sc.Inputs)
	if err != nil {
		return nil, err
	}
	recs, err := recordOutputs(m, sc.Record)
	if err != nil {
		return nil, err
	}

	bypasser, canBypass := m.(module.Bypasser)
	if sc.Bypass && !canBypass {
		return nil, fmt.Errorf("module %s cannot be bypassed", sc.Module)
	}

	frames := sc.Length()
	every := sc.Decimation()
	rows := (frames + every - 1) / every
	for _, rec := range recs {
		for c := range rec.lanes {
			rec.lanes[c] = make([]float32, 0, rows)
		}
	}

	pctx := process.NewContext(sc.Rate(), m.Parameters(), m.Inputs(), m.Outputs())
	length := float64(frames) / float64(pctx.SampleRate)
	var buf [port.MaxChannels]float32

	r.logger.Debugw("render", "scenario", sc.Name, "module", sc.Module, "frames", frames)
	stop := r.profiler.StartUnits(sc.Name, uint64(frames))

	for frame := 0; frame < frames; frame++ {
		if frame%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				stop()
				return nil, err
			}
		}

		t := pctx.Time()
		for _, b := range bindings {
			b.port.Feed(b.signal.At(t, length, buf[:])...)
		}

		if sc.Bypass {
			bypasser.Bypass(pctx)
		} else {
			m.Process(pctx)
		}

		if frame%every == 0 {
			for _, rec := range recs {
				rec.channels = max(rec.channels, rec.port.Channels())
				for c := range rec.lanes {
					rec.lanes[c] = append(rec.lanes[c], rec.port.Voltage(c))
				}
			}
		}
		pctx.Advance()
	}
	stop()

	res := &Result{
		Name:       sc.Name,
		Module:     sc.Module,
		SampleRate: pctx.SampleRate,
		Frames:     frames,
		Every:      every,
		Lights:     append([]float32(nil), m.Lights()...),
	}
	if timing, ok := r.profiler.Measurement(sc.Name); ok {
		res.Timing = timing
	}
	for _, rec := range recs {
		for c := 0; c < rec.channels; c++ {
			name := rec.name
			if rec.channels > 1 {
				name = fmt.Sprintf("%s[%d]", rec.name, c+1)
			}
			res.Columns = append(res.Columns, Column{Name: name, Values: rec.lanes[c]})
			res.Issues = append(res.Issues, debug.CheckVoltages(rec.lanes[c], name)...)
		}
	}
	for _, issue := range res.Issues {
		r.logger.Warn("%s: %s", sc.Name, issue)
	}

	if sc.Dump != "" {
		if err := dumpState(m, sc.resolve(sc.Dump)); err != nil {
			return res, err
		}
	}
	return res, nil
}

func applyParams(m module.Module, values map[string]float64) error {
	for name, v := range values {
		p := m.Parameters().GetByName(name)
		if p == nil {
			return fmt.Errorf("module %s has no parameter %q", m.Info().Slug, name)
		}
		if v < p.Min || v > p.Max {
			return fmt.Errorf("parameter %q value %v outside %v-%v", name, v, p.Min, p.Max)
		}
		p.SetPlainValue(v)
	}
	return nil
}

func bindInputs(m module.Module, signals map[string]Signal) ([]binding, error) {
	bindings := make([]binding, 0, len(signals))
	for name, sig := range signals {
		id, ok := m.Ports().Lookup(port.DirectionInput, name)
		if !ok {
			return nil, fmt.Errorf("module %s has no input %q", m.Info().Slug, name)
		}
		bindings = append(bindings, binding{port: m.Inputs()[id], signal: sig})
	}
	return bindings, nil
}

// recordOutputs connects the named outputs, or every output when names is empty
func recordOutputs(m module.Module, names []string) ([]*recording, error) {
	cfg := m.Ports()
	if len(names) == 0 {
		for id := 0; id < cfg.Count(port.DirectionOutput); id++ {
			names = append(names, cfg.Info(port.DirectionOutput, id).Name)
		}
	}

	recs := make([]*recording, 0, len(names))
	for _, name := range names {
		id, ok := cfg.Lookup(port.DirectionOutput, name)
		if !ok {
			return nil, fmt.Errorf("module %s has no output %q", m.Info().Slug, name)
		}
		out := m.Outputs()[id]
		out.Connect()
		recs = append(recs, &recording{name: name, port: out})
	}
	return recs, nil
}

func loadState(m module.Module, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening state: %w", err)
	}
	defer f.Close()

	if err := m.State().Load(f, state.FormatForPath(path)); err != nil {
		return fmt.Errorf("loading state %s: %w", path, err)
	}
	return nil
}

func dumpState(m module.Module, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating state dump: %w", err)
	}
	if err := m.State().Save(f, state.FormatForPath(path)); err != nil {
		f.Close()
		return fmt.Errorf("saving state %s: %w", path, err)
	}
	return f.Close()
}
