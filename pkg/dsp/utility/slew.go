package utility

// SlewLimiter limits how fast a value may rise or fall.
// Rates are in units per second.
type SlewLimiter struct {
	rise float32
	fall float32
	out  float32
}

// NewSlewLimiter creates a slew limiter with the given rise and fall rates.
func NewSlewLimiter(rise, fall float32) *SlewLimiter {
	return &SlewLimiter{rise: rise, fall: fall}
}

// SetRiseFall updates both rates.
func (s *SlewLimiter) SetRiseFall(rise, fall float32) {
	s.rise = rise
	s.fall = fall
}

// Process moves toward in by at most one step for the elapsed time and returns the new value.
func (s *SlewLimiter) Process(deltaTime, in float32) float32 {
	s.out = Clamp(in, s.out-s.fall*deltaTime, s.out+s.rise*deltaTime)
	return s.out
}

// Value returns the current output without advancing.
func (s *SlewLimiter) Value() float32 {
	return s.out
}

// IsSettled reports whether the output has reached target.
func (s *SlewLimiter) IsSettled(target float32) bool {
	return s.out == target
}

// Reset jumps the output to value.
func (s *SlewLimiter) Reset(value float32) {
	s.out = value
}
