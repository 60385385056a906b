package port

import (
	"fmt"
)

// Direction tells whether a port receives or emits voltage
type Direction int32

const (
	// DirectionInput represents an input jack
	DirectionInput Direction = 0
	// DirectionOutput represents an output jack
	DirectionOutput Direction = 1
)

// String returns a short name for the direction
func (d Direction) String() string {
	if d == DirectionOutput {
		return "output"
	}
	return "input"
}

// Info describes one jack on a module panel
type Info struct {
	ID        int
	Name      string
	Direction Direction
}

// Configuration lists the inputs and outputs of a module in ID order
type Configuration struct {
	inputs  []Info
	outputs []Info
}

// Count returns the number of ports in the given direction
func (c *Configuration) Count(direction Direction) int {
	if direction == DirectionOutput {
		return len(c.outputs)
	}
	return len(c.inputs)
}

// Info returns the description of a port, or nil if it does not exist
func (c *Configuration) Info(direction Direction, id int) *Info {
	list := c.inputs
	if direction == DirectionOutput {
		list = c.outputs
	}
	if id < 0 || id >= len(list) {
		return nil
	}
	return &list[id]
}

// Lookup finds a port ID by name
func (c *Configuration) Lookup(direction Direction, name string) (int, bool) {
	list := c.inputs
	if direction == DirectionOutput {
		list = c.outputs
	}
	for _, info := range list {
		if info.Name == name {
			return info.ID, true
		}
	}
	return 0, false
}

// Allocate creates the port storage for a module instance
func (c *Configuration) Allocate() (inputs, outputs []*Port) {
	inputs = make([]*Port, len(c.inputs))
	for i := range inputs {
		inputs[i] = &Port{}
	}
	outputs = make([]*Port, len(c.outputs))
	for i := range outputs {
		outputs[i] = &Port{}
	}
	return inputs, outputs
}

// Builder provides a fluent API for declaring module ports.
// Ports receive IDs in declaration order, matching the module's ID constants.
type Builder struct {
	config *Configuration
	names  map[string]bool
	errors []error
}

// NewBuilder creates a new port configuration builder
func NewBuilder() *Builder {
	return &Builder{
		config: &Configuration{},
		names:  make(map[string]bool),
	}
}

// Input declares the next input port
func (b *Builder) Input(name string) *Builder {
	return b.add(DirectionInput, name)
}

// Output declares the next output port
func (b *Builder) Output(name string) *Builder {
	return b.add(DirectionOutput, name)
}

func (b *Builder) add(direction Direction, name string) *Builder {
	key := direction.String() + ":" + name
	if b.names[key] {
		b.errors = append(b.errors, fmt.Errorf("duplicate %s port %q", direction, name))
		return b
	}
	b.names[key] = true

	if direction == DirectionOutput {
		b.config.outputs = append(b.config.outputs, Info{ID: len(b.config.outputs), Name: name, Direction: direction})
	} else {
		b.config.inputs = append(b.config.inputs, Info{ID: len(b.config.inputs), Name: name, Direction: direction})
	}
	return b
}

// Build returns the configuration or the first declaration error
func (b *Builder) Build() (*Configuration, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("builder errors: %v", b.errors)
	}
	return b.config, nil
}

// MustBuild is Build for static declarations; it panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
