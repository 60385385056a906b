// Package process provides the per-sample processing context handed to modules.
package process

import (
	"github.com/grough/lilac-modules-vcv/pkg/framework/param"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

// DefaultSampleRate is used until the host sets a rate
const DefaultSampleRate float32 = 48000

// Context carries the sample clock, ports and parameters for one process call.
// A host reuses one Context for the life of a module and calls Advance after
// every sample.
type Context struct {
	SampleRate float32
	SampleTime float32
	Frame      int64

	Inputs  []*port.Port
	Outputs []*port.Port

	params *param.Registry
	// unpatched stands in for any port ID outside the module's configuration
	unpatched port.Port
}

// NewContext creates a context over a module's ports and parameters
func NewContext(sampleRate float32, params *param.Registry, inputs, outputs []*port.Port) *Context {
	c := &Context{
		Inputs:  inputs,
		Outputs: outputs,
		params:  params,
	}
	c.SetSampleRate(sampleRate)
	return c
}

// SetSampleRate updates the rate and the per-sample time step
func (c *Context) SetSampleRate(sampleRate float32) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	c.SampleRate = sampleRate
	c.SampleTime = 1 / sampleRate
}

// Input returns input port id. Unknown IDs read as an unpatched port.
func (c *Context) Input(id int) *port.Port {
	if id < 0 || id >= len(c.Inputs) {
		c.unpatched.Disconnect()
		return &c.unpatched
	}
	return c.Inputs[id]
}

// Output returns output port id. Writes to unknown IDs are discarded.
func (c *Context) Output(id int) *port.Port {
	if id < 0 || id >= len(c.Outputs) {
		c.unpatched.Disconnect()
		return &c.unpatched
	}
	return c.Outputs[id]
}

// Param returns the current plain value of a parameter
func (c *Context) Param(id uint32) float32 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return float32(p.GetPlainValue())
	}
	return 0
}

// ParamNormalized returns the current value of a parameter (0-1 normalized)
func (c *Context) ParamNormalized(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamBool reports whether a parameter is at or above the middle of its range
func (c *Context) ParamBool(id uint32) bool {
	return c.ParamNormalized(id) >= 0.5
}

// Params returns the parameter registry
func (c *Context) Params() *param.Registry {
	return c.params
}

// Advance moves the clock to the next sample
func (c *Context) Advance() {
	c.Frame++
}

// Time returns the elapsed time in seconds at the current frame
func (c *Context) Time() float64 {
	return float64(c.Frame) / float64(c.SampleRate)
}

// ClearOutputs zeros every output lane and keeps the channel counts
func (c *Context) ClearOutputs() {
	for _, out := range c.Outputs {
		for ch := 0; ch < out.Channels(); ch++ {
			out.SetVoltage(ch, 0)
		}
	}
}
