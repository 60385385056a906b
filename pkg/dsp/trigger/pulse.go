package trigger

// DefaultPulseDuration is the length of a trigger pulse in seconds
const DefaultPulseDuration float32 = 1e-3

// Pulse holds a signal high for a duration after being triggered
type Pulse struct {
	remaining float32
}

// Trigger starts a pulse of DefaultPulseDuration
func (p *Pulse) Trigger() {
	p.TriggerFor(DefaultPulseDuration)
}

// TriggerFor starts a pulse. A running longer pulse is not shortened.
func (p *Pulse) TriggerFor(duration float32) {
	if duration > p.remaining {
		p.remaining = duration
	}
}

// Process advances by deltaTime and reports whether the pulse is high
func (p *Pulse) Process(deltaTime float32) bool {
	if p.remaining > 0 {
		p.remaining -= deltaTime
		return true
	}
	return false
}

// Remaining returns the time left in the current pulse
func (p *Pulse) Remaining() float32 {
	if p.remaining < 0 {
		return 0
	}
	return p.remaining
}

// Reset cancels any running pulse
func (p *Pulse) Reset() {
	p.remaining = 0
}

// Timer accumulates elapsed time
type Timer struct {
	time float32
}

// Process advances the timer and returns the elapsed time
func (t *Timer) Process(deltaTime float32) float32 {
	t.time += deltaTime
	return t.time
}

// Time returns the elapsed time
func (t *Timer) Time() float32 {
	return t.time
}

// Reset sets the elapsed time to zero
func (t *Timer) Reset() {
	t.time = 0
}

// ClockDivider fires once every division calls.
// The zero value fires on every call.
type ClockDivider struct {
	clock    uint32
	division uint32
}

// NewClockDivider creates a divider with the given division
func NewClockDivider(division uint32) *ClockDivider {
	d := &ClockDivider{}
	d.SetDivision(division)
	return d
}

// SetDivision sets the number of calls between firings
func (d *ClockDivider) SetDivision(division uint32) {
	d.division = division
}

// Division returns the current division
func (d *ClockDivider) Division() uint32 {
	if d.division == 0 {
		return 1
	}
	return d.division
}

// Process advances the divider and returns true when it wraps
func (d *ClockDivider) Process() bool {
	d.clock++
	if d.clock >= d.Division() {
		d.clock = 0
		return true
	}
	return false
}

// Clock returns the position within the current division
func (d *ClockDivider) Clock() uint32 {
	return d.clock
}

// Reset restarts the division
func (d *ClockDivider) Reset() {
	d.clock = 0
}

// TimedGate stays open for a set duration after each trigger.
// Unlike Pulse, a new trigger always restarts the gate with the new duration.
type TimedGate struct {
	timer    Timer
	duration float32
	open     bool
}

// Trigger opens the gate for duration seconds
func (g *TimedGate) Trigger(duration float32) {
	g.duration = duration
	g.open = true
	g.timer.Reset()
}

// Process advances by deltaTime and reports whether the gate is open
func (g *TimedGate) Process(deltaTime float32) bool {
	if g.timer.Process(deltaTime) >= g.duration {
		g.open = false
	}
	return g.open
}

// Duration returns the length of the last trigger
func (g *TimedGate) Duration() float32 {
	return g.duration
}

// Reset closes the gate
func (g *TimedGate) Reset() {
	g.timer.Reset()
	g.open = false
	g.duration = 0
}
