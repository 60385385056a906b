// Package port provides polyphonic cable ports for module inputs and outputs.
package port

// MaxChannels is the number of lanes a single cable can carry.
const MaxChannels = 16

// Port holds the voltages carried by one jack.
// A disconnected port reads 0 V on every lane and reports 0 channels.
type Port struct {
	voltages  [MaxChannels]float32
	channels  int
	connected bool
}

// Connect marks the port as patched. A connected port always carries at least one lane.
func (p *Port) Connect() {
	p.connected = true
	if p.channels == 0 {
		p.channels = 1
	}
}

// Disconnect unpatches the port and clears its voltages
func (p *Port) Disconnect() {
	p.connected = false
	p.channels = 0
	p.voltages = [MaxChannels]float32{}
}

// IsConnected reports whether a cable is attached
func (p *Port) IsConnected() bool {
	return p.connected
}

// Channels returns the number of active lanes
func (p *Port) Channels() int {
	return p.channels
}

// SetChannels sets the number of active lanes.
// Lanes above the new width are zeroed. A disconnected port stays at 0 lanes
// and a connected port never drops below 1.
func (p *Port) SetChannels(channels int) {
	if !p.connected {
		return
	}
	if channels > MaxChannels {
		channels = MaxChannels
	}
	if channels < 1 {
		channels = 1
	}
	for c := channels; c < p.channels; c++ {
		p.voltages[c] = 0
	}
	p.channels = channels
}

// IsMonophonic reports whether the port carries exactly one lane
func (p *Port) IsMonophonic() bool {
	return p.channels == 1
}

// IsPolyphonic reports whether the port carries more than one lane
func (p *Port) IsPolyphonic() bool {
	return p.channels > 1
}

// Voltage returns the voltage of lane c, or 0 for lanes outside the port
func (p *Port) Voltage(c int) float32 {
	if c < 0 || c >= MaxChannels {
		return 0
	}
	return p.voltages[c]
}

// PolyVoltage returns lane c, broadcasting a monophonic signal to every lane
func (p *Port) PolyVoltage(c int) float32 {
	if p.channels == 1 {
		return p.voltages[0]
	}
	return p.Voltage(c)
}

// SetVoltage writes lane c. Writes outside the lane range are dropped.
func (p *Port) SetVoltage(c int, v float32) {
	if c < 0 || c >= MaxChannels {
		return
	}
	p.voltages[c] = v
}

// VoltageSum returns the sum over active lanes
func (p *Port) VoltageSum() float32 {
	var sum float32
	for c := 0; c < p.channels; c++ {
		sum += p.voltages[c]
	}
	return sum
}

// Lanes returns the active lanes without copying
func (p *Port) Lanes() []float32 {
	return p.voltages[:p.channels]
}

// Feed connects the port and loads one voltage per lane.
// It is how a host (or a test) drives an input; extra values beyond MaxChannels are ignored.
func (p *Port) Feed(volts ...float32) {
	if len(volts) == 0 {
		p.Disconnect()
		return
	}
	p.connected = true
	n := len(volts)
	if n > MaxChannels {
		n = MaxChannels
	}
	for c := n; c < p.channels; c++ {
		p.voltages[c] = 0
	}
	copy(p.voltages[:n], volts)
	p.channels = n
}
