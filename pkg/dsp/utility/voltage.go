// Package utility provides common voltage helpers and small per-sample processors.
package utility

import "github.com/chewxy/math32"

// Standard voltage levels
const (
	// GateHigh is the level of an open gate or a fired trigger
	GateHigh float32 = 10.0
	// AudioPeak is the nominal peak of an audio-rate signal
	AudioPeak float32 = 5.0
)

// Clamp limits x to [min, max]. Reversed bounds are swapped.
func Clamp(x, min, max float32) float32 {
	if min > max {
		min, max = max, min
	}
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// Rescale maps x from [xMin, xMax] onto [yMin, yMax].
// A degenerate input range maps everything to yMin.
func Rescale(x, xMin, xMax, yMin, yMax float32) float32 {
	if xMax == xMin {
		return yMin
	}
	return yMin + (x-xMin)/(xMax-xMin)*(yMax-yMin)
}

// Crossfade blends a into b by t, where t=0 is all a and t=1 is all b.
func Crossfade(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Gate returns GateHigh when on and 0 otherwise.
func Gate(on bool) float32 {
	if on {
		return GateHigh
	}
	return 0
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// PitchFrequency converts a V/oct voltage to Hz, with 0 V at C4.
func PitchFrequency(volts float32) float32 {
	return FreqC4 * math32.Exp2(volts)
}

// FreqC4 is the frequency of 0 V on the V/oct scale
const FreqC4 float32 = 261.6256
