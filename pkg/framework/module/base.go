// Package module provides the shared plumbing every module embeds.
package module

import (
	"github.com/grough/lilac-modules-vcv/pkg/framework/debug"
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/framework/process"
	"github.com/grough/lilac-modules-vcv/pkg/framework/state"
)

// Module is the interface hosts drive
type Module interface {
	Info() Info
	Parameters() *param.Registry
	Ports() *port.Configuration
	Inputs() []*port.Port
	Outputs() []*port.Port
	Lights() []float32
	State() *state.Manager
	Logger() *debug.Logger

	// Process advances the module by one sample. It must not allocate or block.
	Process(ctx *process.Context)
	// Reset returns the module to its power-on state
	Reset()
}

// Bypasser is implemented by modules that route inputs straight to outputs
// while bypassed
type Bypasser interface {
	Bypass(ctx *process.Context)
}

// Base provides core functionality for all modules
type Base struct {
	info    Info
	params  *param.Registry
	ports   *port.Configuration
	inputs  []*port.Port
	outputs []*port.Port
	lights  []float32
	state   *state.Manager
	logger  *debug.Logger
}

// NewBase creates a module base with ports allocated from the configuration
func NewBase(info Info, ports *port.Configuration, lights int) *Base {
	if ports == nil {
		ports = port.NewBuilder().MustBuild()
	}
	b := &Base{
		info:   info,
		params: param.NewRegistry(),
		ports:  ports,
		lights: make([]float32, lights),
		logger: debug.Default().With(info.Slug),
	}
	b.inputs, b.outputs = ports.Allocate()
	b.state = state.NewManager(info.Slug, b.params)
	return b
}

// Info returns the module metadata
func (b *Base) Info() Info {
	return b.info
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// Ports returns the port layout
func (b *Base) Ports() *port.Configuration {
	return b.ports
}

// Inputs returns the input ports in ID order
func (b *Base) Inputs() []*port.Port {
	return b.inputs
}

// Outputs returns the output ports in ID order
func (b *Base) Outputs() []*port.Port {
	return b.outputs
}

// Input returns one input port, or nil for an unknown ID
func (b *Base) Input(id int) *port.Port {
	if id < 0 || id >= len(b.inputs) {
		return nil
	}
	return b.inputs[id]
}

// Output returns one output port, or nil for an unknown ID
func (b *Base) Output(id int) *port.Port {
	if id < 0 || id >= len(b.outputs) {
		return nil
	}
	return b.outputs[id]
}

// Lights returns the light brightness values
func (b *Base) Lights() []float32 {
	return b.lights
}

// SetLight sets one light's brightness (0-1)
func (b *Base) SetLight(id int, brightness float32) {
	if id >= 0 && id < len(b.lights) {
		b.lights[id] = brightness
	}
}

// Light returns one light's brightness
func (b *Base) Light(id int) float32 {
	if id < 0 || id >= len(b.lights) {
		return 0
	}
	return b.lights[id]
}

// State returns the state manager
func (b *Base) State() *state.Manager {
	return b.state
}

// Logger returns the module's logger
func (b *Base) Logger() *debug.Logger {
	return b.logger
}

// SetLogger replaces the module's logger
func (b *Base) SetLogger(logger *debug.Logger) {
	b.logger = logger
}

// NewContext creates a process context bound to this module's ports and parameters
func (b *Base) NewContext(sampleRate float32) *process.Context {
	return process.NewContext(sampleRate, b.params, b.inputs, b.outputs)
}

// ResetParameters restores every parameter default
func (b *Base) ResetParameters() {
	b.params.ResetAll()
}
