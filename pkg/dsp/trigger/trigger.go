// Package trigger provides edge detectors, pulse generators and clock dividers
// for gate and trigger signals.
package trigger

// Boolean detects false to true transitions.
// The zero value treats the previous sample as low.
type Boolean struct {
	high bool
}

// Process returns true when in is high and the previous sample was low
func (b *Boolean) Process(in bool) bool {
	fired := in && !b.high
	b.high = in
	return fired
}

// Reset forgets the previous sample
func (b *Boolean) Reset() {
	b.high = false
}

// IsHigh returns the last processed state
func (b *Boolean) IsHigh() bool {
	return b.high
}

// Default Schmitt thresholds in volts
const (
	SchmittLow  float32 = 0.0
	SchmittHigh float32 = 1.0
)

// Schmitt is a trigger with hysteresis.
// It turns on at or above the high threshold and off at or below the low one.
type Schmitt struct {
	high bool
}

// Process applies the default thresholds
func (s *Schmitt) Process(in float32) bool {
	return s.ProcessThresholds(in, SchmittLow, SchmittHigh)
}

// ProcessThresholds returns true on the sample the trigger turns on
func (s *Schmitt) ProcessThresholds(in, low, high float32) bool {
	if s.high {
		if in <= low {
			s.high = false
		}
		return false
	}
	if in >= high {
		s.high = true
		return true
	}
	return false
}

// IsHigh reports whether the trigger is currently on
func (s *Schmitt) IsHigh() bool {
	return s.high
}

// Reset turns the trigger off
func (s *Schmitt) Reset() {
	s.high = false
}
