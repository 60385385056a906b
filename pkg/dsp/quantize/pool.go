package quantize

import (
	"slices"

	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

// MaxSources is the capacity of a Pool gathered from four full ports
const MaxSources = 4 * port.MaxChannels

// Pool is the working set of candidate voltages.
// It is rebuilt every sample and never allocates.
type Pool struct {
	values [MaxSources]float32
	sorted [MaxSources]float32
	n      int
	dirty  bool
}

// Gather replaces the pool with every active lane of each port, in port order
func (p *Pool) Gather(sources ...*port.Port) {
	p.Clear()
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, v := range src.Lanes() {
			p.Add(v)
		}
	}
}

// Add appends one voltage. Values past MaxSources are dropped.
func (p *Pool) Add(v float32) {
	if p.n >= MaxSources {
		return
	}
	p.values[p.n] = v
	p.n++
	p.dirty = true
}

// Clear empties the pool
func (p *Pool) Clear() {
	p.n = 0
	p.dirty = true
}

// Len returns the number of candidates
func (p *Pool) Len() int {
	return p.n
}

// Values returns the candidates in gathering order
func (p *Pool) Values() []float32 {
	return p.values[:p.n]
}

// Sorted returns the candidates in ascending order.
// The slice is reused until the pool changes.
func (p *Pool) Sorted() []float32 {
	if p.dirty {
		copy(p.sorted[:p.n], p.values[:p.n])
		slices.Sort(p.sorted[:p.n])
		p.dirty = false
	}
	return p.sorted[:p.n]
}
