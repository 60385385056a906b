package debug

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects timing statistics for named sections.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name        string
	Count       uint64
	Total       time.Duration
	Min         time.Duration
	Max         time.Duration
	Last        time.Duration
	Units       uint64
	samples     []time.Duration
	sampleIndex int
}

// NewProfiler creates a profiler that keeps the last maxSamples timings per section.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section. Call the returned function to stop.
func (p *Profiler) Start(name string) func() {
	return p.StartUnits(name, 0)
}

// StartUnits is Start for a section that processes units of work, such as
// rendered frames. Units feed the throughput figures in the report.
func (p *Profiler) StartUnits(name string, units uint64) func() {
	if !p.enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.record(name, time.Since(start), units)
	}
}

// Time measures the execution time of a function.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

func (p *Profiler) record(name string, elapsed time.Duration, units uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			Name:    name,
			Min:     elapsed,
			Max:     elapsed,
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.Count++
	m.Total += elapsed
	m.Last = elapsed
	m.Units += units
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)

	if len(m.samples) < p.maxSamples {
		m.samples = append(m.samples, elapsed)
	} else {
		m.samples[m.sampleIndex] = elapsed
	}
	m.sampleIndex = (m.sampleIndex + 1) % p.maxSamples
}

// Measurement returns a copy of the measurement for a named section.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	c := *m
	c.samples = slices.Clone(m.samples)
	return c, true
}

// Names returns the profiled section names in sorted order.
func (p *Profiler) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report. sampleRate converts units to
// seconds of audio for the realtime factor; pass 0 to omit it.
func (p *Profiler) Report(sampleRate float64) string {
	names := p.Names()
	if len(names) == 0 {
		return "No measurements recorded"
	}

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	sb.WriteString("==================\n\n")

	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%s:\n", name)
		fmt.Fprintf(&sb, "  Count:   %d\n", m.Count)
		fmt.Fprintf(&sb, "  Total:   %v\n", m.Total)
		fmt.Fprintf(&sb, "  Average: %v\n", m.Average())
		fmt.Fprintf(&sb, "  Min:     %v\n", m.Min)
		fmt.Fprintf(&sb, "  Max:     %v\n", m.Max)
		fmt.Fprintf(&sb, "  p95:     %v\n", m.Percentile(95))
		if m.Units > 0 {
			fmt.Fprintf(&sb, "  Per unit: %v\n", m.PerUnit())
			if sampleRate > 0 {
				fmt.Fprintf(&sb, "  Realtime: %.1fx\n", m.RealtimeFactor(sampleRate))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Average returns the average time for this measurement.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// PerUnit returns the average time spent per unit of work.
func (m Measurement) PerUnit() time.Duration {
	if m.Units == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Units)
}

// RealtimeFactor returns how many seconds of audio were processed per
// second of wall time, treating units as frames at sampleRate.
func (m Measurement) RealtimeFactor(sampleRate float64) float64 {
	if m.Total <= 0 || sampleRate <= 0 {
		return 0
	}
	audio := float64(m.Units) / sampleRate
	return audio / m.Total.Seconds()
}

// Percentile returns the given percentile of the retained samples.
func (m Measurement) Percentile(p float64) time.Duration {
	if len(m.samples) == 0 {
		return 0
	}
	sorted := slices.Clone(m.samples)
	slices.Sort(sorted)

	p = min(max(p, 0), 100)
	index := int(float64(len(sorted)-1) * p / 100.0)
	return sorted[index]
}
