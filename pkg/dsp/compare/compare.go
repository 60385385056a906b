// Package compare implements a three-way voltage comparator with an
// adjustable equality band.
package compare

import (
	"math"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

// DefaultTolerance makes the equal band as narrow as a float32 allows
const DefaultTolerance float32 = math.SmallestNonzeroFloat32

// Result is the outcome of a comparison
type Result int

const (
	// Equal means a lies within tolerance of b
	Equal Result = iota
	// Less means a is below the equal band
	Less
	// Greater means a is above the equal band
	Greater
)

// String returns a symbol for the result
func (r Result) String() string {
	switch r {
	case Less:
		return "<"
	case Greater:
		return ">"
	default:
		return "="
	}
}

// Compare returns exactly one result for any inputs.
// NaN operands compare Equal.
func Compare(a, b, tolerance float32) Result {
	switch {
	case a < b-tolerance:
		return Less
	case a > b+tolerance:
		return Greater
	default:
		return Equal
	}
}

// Unit compares A against B on every lane
type Unit struct {
	Tolerance float32
}

// NewUnit creates a comparator with the default tolerance
func NewUnit() *Unit {
	return &Unit{Tolerance: DefaultTolerance}
}

// Process writes 10 V to the output selected on each lane and 0 V to the others.
// aParam is used for A when the A input is not connected.
func (u *Unit) Process(aParam float32, aIn, bIn, less, equal, greater *port.Port) {
	channels := max(aIn.Channels(), bIn.Channels())

	less.SetChannels(channels)
	equal.SetChannels(channels)
	greater.SetChannels(channels)

	for c := 0; c < channels; c++ {
		a := aParam
		if aIn.IsConnected() {
			a = aIn.PolyVoltage(c)
		}
		r := Compare(a, bIn.PolyVoltage(c), u.Tolerance)

		less.SetVoltage(c, utility.Gate(r == Less))
		equal.SetVoltage(c, utility.Gate(r == Equal))
		greater.SetVoltage(c, utility.Gate(r == Greater))
	}
}
