package probe

import (
	"math"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
)

func (s *Signal) high() float32 {
	if s.High != nil {
		return *s.High
	}
	return utility.GateHigh
}

func (s *Signal) lanes() int {
	return max(s.Channels, 1)
}

// At writes the signal's lanes at time t into buf and returns them.
// length is the scenario length in seconds, used by ramps.
// An off signal returns no lanes.
func (s *Signal) At(t, length float64, buf []float32) []float32 {
	switch s.Kind {
	case KindOff:
		return buf[:0]
	case KindConstant:
		return buf[:copy(buf, s.Values)]
	}

	var v float32
	switch s.Kind {
	case KindSquare:
		duty := s.Duty
		if duty == 0 {
			duty = 0.5
		}
		_, phase := math.Modf(t * s.Frequency)
		v = s.Low
		if phase < duty {
			v = s.high()
		}
	case KindRamp:
		x := float32(1)
		if length > 0 && t < length {
			x = float32(t / length)
		}
		v = utility.Crossfade(s.From, s.To, x)
	case KindSteps:
		v = s.Values[int(t/s.Step)%len(s.Values)]
	case KindTrigger:
		width := s.Width
		if width <= 0 {
			width = DefaultTriggerWidth
		}
		v = s.Low
		for _, at := range s.Times {
			if t >= at && t < at+width {
				v = s.high()
				break
			}
		}
	}

	n := min(s.lanes(), len(buf))
	for c := 0; c < n; c++ {
		buf[c] = v
	}
	return buf[:n]
}
