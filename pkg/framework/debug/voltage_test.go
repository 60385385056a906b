package debug

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestAnalyzeVoltages(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		stats := AnalyzeVoltages(nil)
		if stats.Samples != 0 || stats.Mean != 0 {
			t.Errorf("Unexpected stats for empty trace: %+v", stats)
		}
	})

	t.Run("Finite", func(t *testing.T) {
		stats := AnalyzeVoltages([]float32{-2, 0, 2, 4})
		if stats.Min != -2 || stats.Max != 4 {
			t.Errorf("Min/Max = %f/%f, want -2/4", stats.Min, stats.Max)
		}
		if math.Abs(float64(stats.Mean-1)) > 1e-6 {
			t.Errorf("Mean = %f, want 1", stats.Mean)
		}
	})

	t.Run("NonFinite", func(t *testing.T) {
		nan := float32(math.NaN())
		inf := float32(math.Inf(1))
		stats := AnalyzeVoltages([]float32{1, nan, inf, 3, nan})
		if stats.NaNCount != 2 || stats.InfCount != 1 {
			t.Errorf("NaN/Inf = %d/%d, want 2/1", stats.NaNCount, stats.InfCount)
		}
		if stats.Min != 1 || stats.Max != 3 {
			t.Errorf("Stats should skip non-finite values: %+v", stats)
		}
		if !strings.Contains(stats.String(), "nan=2") {
			t.Errorf("String() = %q", stats.String())
		}
	})
}

func TestCheckVoltages(t *testing.T) {
	tests := []struct {
		name     string
		trace    []float32
		expected int
	}{
		{"Clean", []float32{0, 5, -5, 10}, 0},
		{"Over rail", []float32{0, 13}, 1},
		{"NaN", []float32{float32(math.NaN())}, 1},
		{"NaN and over rail", []float32{float32(math.NaN()), -20}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckVoltages(tt.trace, "out")
			if len(issues) != tt.expected {
				t.Errorf("Got %d issues %v, want %d", len(issues), issues, tt.expected)
			}
		})
	}
}

func TestLogVoltageIssues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", FlagLevel)
	n := LogVoltageIssues(logger, []float32{15}, "sum")
	if n != 1 || !strings.Contains(buf.String(), "[WARN] sum: exceeds") {
		t.Errorf("Unexpected log output %q", buf.String())
	}
}

func TestCompareTraces(t *testing.T) {
	a := []float32{1, 2, 3}
	if !strings.Contains(CompareTraces(a, []float32{1, 2, 3.0000001}, 1e-4), "identical") {
		t.Error("Expected traces to match")
	}
	if !strings.Contains(CompareTraces(a, []float32{1, 2.5, 3}, 1e-4), "at sample 1") {
		t.Error("Expected difference at sample 1")
	}
	if !strings.Contains(CompareTraces(a, a[:2], 0), "mismatch") {
		t.Error("Expected length mismatch")
	}
}

func TestDumpVoltages(t *testing.T) {
	dump := DumpVoltages([]float32{-10, 0, 10, 20}, 3)
	if !strings.Contains(dump, "showing first 3") {
		t.Errorf("Missing header: %s", dump)
	}
	if !strings.Contains(dump, "1 more samples") {
		t.Errorf("Missing trailer: %s", dump)
	}
	if DumpVoltages(nil, 0) != "Empty trace" {
		t.Error("Expected empty marker")
	}
}
