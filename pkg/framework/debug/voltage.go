package debug

import (
	"fmt"
	"math"
	"strings"

	"github.com/viterin/vek/vek32"
)

// Voltage limits used by CheckVoltages
const (
	// RailVoltage is the highest magnitude a well-behaved module emits
	RailVoltage float32 = 12.0
)

// VoltageStats summarizes a trace of voltages.
type VoltageStats struct {
	Samples  int
	Min      float32
	Max      float32
	Mean     float32
	NaNCount int
	InfCount int
}

// AnalyzeVoltages computes statistics over the finite values in trace.
func AnalyzeVoltages(trace []float32) VoltageStats {
	stats := VoltageStats{Samples: len(trace)}
	if len(trace) == 0 {
		return stats
	}

	finite := make([]float32, 0, len(trace))
	for _, v := range trace {
		switch {
		case math.IsNaN(float64(v)):
			stats.NaNCount++
		case math.IsInf(float64(v), 0):
			stats.InfCount++
		default:
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return stats
	}

	stats.Min = vek32.Min(finite)
	stats.Max = vek32.Max(finite)
	stats.Mean = vek32.Mean(finite)
	return stats
}

// String formats the statistics on one line.
func (s VoltageStats) String() string {
	return fmt.Sprintf("n=%d min=%.4f max=%.4f mean=%.4f nan=%d inf=%d",
		s.Samples, s.Min, s.Max, s.Mean, s.NaNCount, s.InfCount)
}

// CheckVoltages reports problems in a trace: NaN or infinite values and
// values beyond the supply rails.
func CheckVoltages(trace []float32, name string) []string {
	var issues []string

	stats := AnalyzeVoltages(trace)
	if stats.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, stats.NaNCount))
	}
	if stats.InfCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d infinite values", name, stats.InfCount))
	}
	if stats.Max > RailVoltage || stats.Min < -RailVoltage {
		issues = append(issues, fmt.Sprintf("%s: exceeds ±%.0f V (min %.3f, max %.3f)",
			name, RailVoltage, stats.Min, stats.Max))
	}

	return issues
}

// LogVoltageIssues runs CheckVoltages and logs each issue as a warning.
func LogVoltageIssues(logger *Logger, trace []float32, name string) int {
	issues := CheckVoltages(trace, name)
	for _, issue := range issues {
		logger.Warn("%s", issue)
	}
	return len(issues)
}

// CompareTraces compares two traces and describes the differences.
func CompareTraces(a, b []float32, tolerance float32) string {
	if len(a) != len(b) {
		return fmt.Sprintf("Trace length mismatch: %d vs %d", len(a), len(b))
	}

	var maxDiff float32
	var maxDiffIndex int
	var diffCount int

	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			diffCount++
			if diff > maxDiff {
				maxDiff = diff
				maxDiffIndex = i
			}
		}
	}

	if diffCount == 0 {
		return "Traces are identical within tolerance"
	}

	return fmt.Sprintf("Trace differences:\n"+
		"  Samples different: %d / %d (%.1f%%)\n"+
		"  Max difference: %.6f at sample %d\n"+
		"  Tolerance: %.6f",
		diffCount, len(a), float64(diffCount)/float64(len(a))*100,
		maxDiff, maxDiffIndex,
		tolerance)
}

// DumpVoltages renders the first maxSamples of a trace with a bar over ±10 V.
func DumpVoltages(trace []float32, maxSamples int) string {
	if len(trace) == 0 {
		return "Empty trace"
	}
	if maxSamples <= 0 || maxSamples > len(trace) {
		maxSamples = len(trace)
	}

	const barWidth = 20

	var sb strings.Builder
	fmt.Fprintf(&sb, "Voltage trace (%d samples, showing first %d):\n", len(trace), maxSamples)
	sb.WriteString("Index | Volts      | Bar\n")
	sb.WriteString("------|------------|--------------------\n")

	for i := 0; i < maxSamples; i++ {
		v := trace[i]
		normalized := v / 10
		if normalized > 1 {
			normalized = 1
		} else if normalized < -1 {
			normalized = -1
		}

		bar := []byte(strings.Repeat(" ", barWidth))
		if pos := int((normalized + 1) * barWidth / 2); pos >= 0 && pos < barWidth {
			bar[pos] = '|'
		} else if pos == barWidth {
			bar[barWidth-1] = '|'
		}
		fmt.Fprintf(&sb, "%5d | %+10.4f | %s\n", i, v, bar)
	}

	if maxSamples < len(trace) {
		fmt.Fprintf(&sb, "... %d more samples ...\n", len(trace)-maxSamples)
	}
	return sb.String()
}
