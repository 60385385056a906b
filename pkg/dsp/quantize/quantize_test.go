package quantize

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestNearest(t *testing.T) {
	sources := []float32{-5, 4, 5}

	tests := []struct {
		in       float32
		expected float32
	}{
		{-1, -5},
		{0, 4},
		{4.51, 5},
		{4.5, 4}, // tie keeps the earlier candidate
		{-100, -5},
		{100, 5},
	}

	for _, tt := range tests {
		if got := Nearest(sources, tt.in); !approx(got, tt.expected) {
			t.Errorf("Nearest(%v, %f) = %f, want %f", sources, tt.in, got, tt.expected)
		}
	}
}

func TestNearestTieBreak(t *testing.T) {
	// Equal distance both ways, first occurrence wins
	if got := Nearest([]float32{2, -2}, 0); got != 2 {
		t.Errorf("Tie should resolve to first candidate, got %f", got)
	}
	if got := Nearest([]float32{-2, 2}, 0); got != -2 {
		t.Errorf("Tie should resolve to first candidate, got %f", got)
	}
}

func TestProportional(t *testing.T) {
	sources := []float32{0, 10, 8}

	tests := []struct {
		in       float32
		expected float32
	}{
		{0, 0},
		{2.49, 0},
		{2.51, 8},
		{7.49, 8},
		{7.51, 10},
		{10.1, 10},
		{-3, 0},
	}

	for _, tt := range tests {
		if got := Proportional(sources, tt.in); !approx(got, tt.expected) {
			t.Errorf("Proportional(%v, %f) = %f, want %f", sources, tt.in, got, tt.expected)
		}
	}

	if sources[1] != 10 || sources[2] != 8 {
		t.Error("Proportional must not reorder the caller's slice")
	}
}

func TestScan(t *testing.T) {
	sources := []float32{1.23, 2.34, 3.45, 4.56}

	tests := []struct {
		name         string
		inMin, inMax float32
		in           float32
		expected     float32
	}{
		{"Unit zero", 0, 1, 0, 1.23},
		{"Unit 0.24", 0, 1, 0.24, 1.23},
		{"Unit 0.26", 0, 1, 0.26, 2.34},
		{"Unit 0.49", 0, 1, 0.49, 2.34},
		{"Unit 0.51", 0, 1, 0.51, 3.45},
		{"Unit 0.74", 0, 1, 0.74, 3.45},
		{"Unit 0.76", 0, 1, 0.76, 4.56},
		{"Unit 0.99", 0, 1, 0.99, 4.56},
		{"Unit top edge", 0, 1, 1.0, 4.56},
		{"Unit far above", 0, 1, 100, 4.56},
		{"Volts negative", 0, 10, -1, 1.23},
		{"Volts zero", 0, 10, 0, 1.23},
		{"Volts 2.4", 0, 10, 2.4, 1.23},
		{"Volts 2.6", 0, 10, 2.6, 2.34},
		{"Volts 4.9", 0, 10, 4.9, 2.34},
		{"Volts 5.1", 0, 10, 5.1, 3.45},
		{"Volts 7.4", 0, 10, 7.4, 3.45},
		{"Volts 7.6", 0, 10, 7.6, 4.56},
		{"Volts 9.9", 0, 10, 9.9, 4.56},
		{"Volts top edge", 0, 10, 10, 4.56},
		{"Degenerate range", 3, 3, 3, 1.23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(sources, tt.inMin, tt.inMax, tt.in)
			if !approx(got, tt.expected) {
				t.Errorf("Scan(%f, %f, %f) = %f, want %f", tt.inMin, tt.inMax, tt.in, got, tt.expected)
			}
		})
	}
}

func TestScanSortsCandidates(t *testing.T) {
	sources := []float32{4.56, 1.23, 3.45, 2.34}
	if got := Scan(sources, 0, 1, 0.1); !approx(got, 1.23) {
		t.Errorf("Scan should index sorted candidates, got %f", got)
	}
	if got := ScanUnsorted(sources, 0, 1, 0.1); !approx(got, 4.56) {
		t.Errorf("ScanUnsorted should keep given order, got %f", got)
	}
	if sources[0] != 4.56 {
		t.Error("Scan must not reorder the caller's slice")
	}
}

func TestScanIndexBounds(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	tests := []struct {
		name     string
		n        int
		in       float32
		expected int
	}{
		{"Empty", 0, 0.5, 0},
		{"Single", 1, 0.99, 0},
		{"Positive infinity", 4, inf, 3},
		{"Negative infinity", 4, -inf, 0},
		{"NaN", 4, nan, 0},
		{"Just below zero", 4, -0.0001, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScanIndex(tt.n, 0, 1, tt.in); got != tt.expected {
				t.Errorf("ScanIndex(%d, %f) = %d, want %d", tt.n, tt.in, got, tt.expected)
			}
		})
	}
}

func TestEmptyAndSingleCandidates(t *testing.T) {
	if Nearest(nil, 3) != 0 {
		t.Error("Nearest of empty should be 0")
	}
	if Proportional(nil, 3) != 0 {
		t.Error("Proportional of empty should be 0")
	}
	if Scan(nil, 0, 10, 3) != 0 {
		t.Error("Scan of empty should be 0")
	}

	single := []float32{2.5}
	for _, in := range []float32{-10, 0, 2.5, 10} {
		if got := Proportional(single, in); got != 2.5 {
			t.Errorf("Proportional single candidate at %f = %f, want 2.5", in, got)
		}
		if got := Scan(single, 0, 10, in); got != 2.5 {
			t.Errorf("Scan single candidate at %f = %f, want 2.5", in, got)
		}
	}
}

func TestProportionalEqualCandidates(t *testing.T) {
	got := Proportional([]float32{3, 3, 3}, 7)
	if got != 3 || math.IsNaN(float64(got)) {
		t.Errorf("Proportional of equal candidates = %f, want 3", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(0, 10, 2.5); !approx(got, 0.25) {
		t.Errorf("Normalize = %f, want 0.25", got)
	}
	if got := Normalize(-5, 5, 5); !approx(got, 1) {
		t.Errorf("Normalize = %f, want 1", got)
	}
}

func BenchmarkNearest(b *testing.B) {
	sources := make([]float32, MaxSources)
	for i := range sources {
		sources[i] = float32(i) * 0.1
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Nearest(sources, 3.14)
	}
}
