// Package probe renders modules offline from YAML scenario files.
//
// A scenario names a module, sets its parameters, drives its inputs with
// generated signals and records the outputs it asks for:
//
//	name: counter-cycle
//	module: Counter
//	sampleRate: 48000
//	duration: 0.1
//	params:
//	  Count: 3
//	inputs:
//	  Clock: {kind: square, frequency: 100}
//	  Reset: {kind: trigger, times: [0.05]}
//	record: [Gate, End of cycle]
//	every: 48
package probe

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
)

// DefaultDuration is the render length when a scenario gives neither frames nor duration
const DefaultDuration = 1.0

// Scenario describes one offline render
type Scenario struct {
	Name       string             `yaml:"name"`
	Module     string             `yaml:"module"`
	SampleRate float32            `yaml:"sampleRate,omitempty"`
	Duration   float64            `yaml:"duration,omitempty"`
	Frames     int                `yaml:"frames,omitempty"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Inputs     map[string]Signal  `yaml:"inputs,omitempty"`
	Record     []string           `yaml:"record,omitempty"`
	Every      int                `yaml:"every,omitempty"`
	Bypass     bool               `yaml:"bypass,omitempty"`

	// State is loaded into the module before rendering
	State string `yaml:"state,omitempty"`
	// Dump receives the module state after rendering
	Dump string `yaml:"dump,omitempty"`

	dir string
}

// Signal generates the voltages fed to one input
type Signal struct {
	Kind      string    `yaml:"kind"`
	Values    []float32 `yaml:"values,omitempty"`
	Channels  int       `yaml:"channels,omitempty"`
	Low       float32   `yaml:"low,omitempty"`
	High      *float32  `yaml:"high,omitempty"`
	Frequency float64   `yaml:"frequency,omitempty"`
	Duty      float64   `yaml:"duty,omitempty"`
	From      float32   `yaml:"from,omitempty"`
	To        float32   `yaml:"to,omitempty"`
	Step      float64   `yaml:"step,omitempty"`
	Times     []float64 `yaml:"times,omitempty"`
	Width     float64   `yaml:"width,omitempty"`
}

// Signal kinds
const (
	KindConstant = "constant"
	KindSquare   = "square"
	KindRamp     = "ramp"
	KindSteps    = "steps"
	KindTrigger  = "trigger"
	KindOff      = "off"
)

// DefaultTriggerWidth is the length of a trigger signal pulse in seconds
const DefaultTriggerWidth = 1e-3

// ErrNoModule is returned for a scenario without a module slug
var ErrNoModule = errors.New("scenario names no module")

// Parse decodes a scenario document. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file. Relative state and dump paths resolve
// against the file's directory.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Validate checks the scenario and every signal in it
func (sc *Scenario) Validate() error {
	if sc.Module == "" {
		return ErrNoModule
	}
	if sc.SampleRate < 0 || sc.Duration < 0 || sc.Frames < 0 || sc.Every < 0 {
		return fmt.Errorf("scenario %q: negative sample rate, length or decimation", sc.Name)
	}
	for name, sig := range sc.Inputs {
		if err := sig.Validate(); err != nil {
			return fmt.Errorf("input %q: %w", name, err)
		}
	}
	return nil
}

// Rate returns the sample rate, falling back to the host default
func (sc *Scenario) Rate() float32 {
	if sc.SampleRate > 0 {
		return sc.SampleRate
	}
	return process.DefaultSampleRate
}

// Length returns the number of frames to render
func (sc *Scenario) Length() int {
	if sc.Frames > 0 {
		return sc.Frames
	}
	d := sc.Duration
	if d == 0 {
		d = DefaultDuration
	}
	return int(math.Round(d * float64(sc.Rate())))
}

// Decimation returns the frame interval between recorded rows
func (sc *Scenario) Decimation() int {
	return max(sc.Every, 1)
}

func (sc *Scenario) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || sc.dir == "" {
		return path
	}
	return filepath.Join(sc.dir, path)
}

// Validate checks that the signal has what its kind needs
func (s *Signal) Validate() error {
	if s.Channels < 0 || s.Channels > port.MaxChannels {
		return fmt.Errorf("channels %d outside 0-%d", s.Channels, port.MaxChannels)
	}
	switch s.Kind {
	case KindConstant:
		if len(s.Values) == 0 || len(s.Values) > port.MaxChannels {
			return fmt.Errorf("constant needs 1-%d values, got %d", port.MaxChannels, len(s.Values))
		}
	case KindSquare:
		if s.Frequency <= 0 {
			return fmt.Errorf("square needs a positive frequency")
		}
		if s.Duty < 0 || s.Duty > 1 {
			return fmt.Errorf("duty %v outside 0-1", s.Duty)
		}
	case KindRamp:
	case KindSteps:
		if len(s.Values) == 0 || s.Step <= 0 {
			return fmt.Errorf("steps needs values and a positive step length")
		}
	case KindTrigger:
		if len(s.Times) == 0 {
			return fmt.Errorf("trigger needs at least one time")
		}
	case KindOff:
	default:
		return fmt.Errorf("unknown signal kind %q", s.Kind)
	}
	return nil
}
