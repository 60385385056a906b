// Package quantize snaps a voltage onto one of a set of candidate voltages.
//
// All selectors are pure functions of the candidate slice and the query.
// They never modify the caller's slice, and an empty candidate set selects 0 V.
package quantize

import (
	"math"
	"slices"

	"github.com/chewxy/math32"
)

// Normalize maps x from [min, max] onto [0, 1]
func Normalize(min, max, x float32) float32 {
	return (x - min) / (max - min)
}

// Nearest returns the candidate closest to in.
// On a tie the earliest candidate wins.
func Nearest(sources []float32, in float32) float32 {
	if len(sources) == 0 {
		return 0
	}
	return sources[nearestIndex(sources, in)]
}

func nearestIndex(sources []float32, in float32) int {
	nearest := 0
	minDiff := float32(math.MaxFloat32)
	for i, src := range sources {
		if diff := math32.Abs(in - src); diff < minDiff {
			minDiff = diff
			nearest = i
		}
	}
	return nearest
}

// Proportional spreads the candidates evenly between their minimum and
// maximum and returns the candidate whose rank lands nearest to in.
func Proportional(sources []float32, in float32) float32 {
	if len(sources) == 0 {
		return 0
	}
	return proportionalSorted(sortedCopy(sources), in)
}

// proportionalSorted expects sorted to be ascending
func proportionalSorted(sorted []float32, in float32) float32 {
	n := len(sorted)
	switch n {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}

	lo := sorted[0]
	inc := (sorted[n-1] - lo) / float32(n-1)
	nearest := 0
	minDiff := float32(math.MaxFloat32)
	for i := 0; i < n; i++ {
		if diff := math32.Abs(in - (lo + float32(i)*inc)); diff < minDiff {
			minDiff = diff
			nearest = i
		}
	}
	return sorted[nearest]
}

// Scan treats the sorted candidates as equal slices of [inMin, inMax] and
// returns the candidate whose slice contains in. Queries outside the range
// select the first or last candidate.
func Scan(sources []float32, inMin, inMax, in float32) float32 {
	if len(sources) == 0 {
		return 0
	}
	return scanOrdered(sortedCopy(sources), inMin, inMax, in)
}

// ScanUnsorted is Scan without sorting, indexing the candidates in the order given
func ScanUnsorted(sources []float32, inMin, inMax, in float32) float32 {
	if len(sources) == 0 {
		return 0
	}
	return scanOrdered(sources, inMin, inMax, in)
}

func scanOrdered(ordered []float32, inMin, inMax, in float32) float32 {
	return ordered[ScanIndex(len(ordered), inMin, inMax, in)]
}

// ScanIndex returns the slot of in within [inMin, inMax] divided into n
// equal slots, clamped to [0, n-1]. A degenerate range selects slot 0.
func ScanIndex(n int, inMin, inMax, in float32) int {
	if n <= 0 {
		return 0
	}
	if inMax == inMin {
		return 0
	}
	x := Normalize(inMin, inMax, in) * float32(n)
	switch {
	case math32.IsNaN(x):
		return 0
	case x < 0:
		return 0
	case x >= float32(n):
		return n - 1
	}
	idx := int(math32.Floor(x))
	if idx > n-1 {
		return n - 1
	}
	return idx
}

func sortedCopy(sources []float32) []float32 {
	sorted := slices.Clone(sources)
	slices.Sort(sorted)
	return sorted
}
