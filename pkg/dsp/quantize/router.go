package quantize

import (
	"fmt"
	"strings"

	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
)

// Mode selects the quantization algorithm used by a Router
type Mode int

const (
	// ModeNearest picks the closest candidate
	ModeNearest Mode = iota
	// ModeProportional picks by rank on an evenly spread lattice
	ModeProportional
	// ModeScan picks by slot within a fixed input range
	ModeScan
)

var modeNames = []string{"nearest", "proportional", "scan"}

// String returns the persisted name of the mode
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode parses a mode name
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeNearest, fmt.Errorf("unknown quantize mode %q", name)
}

// Order selects how candidates are arranged before a scan
type Order int

const (
	// OrderSorted scans the candidates in ascending order
	OrderSorted Order = iota
	// OrderPool scans the candidates in the order they were gathered
	OrderPool
)

// String returns the persisted name of the order
func (o Order) String() string {
	if o == OrderPool {
		return "pool"
	}
	return "sorted"
}

// ParseOrder parses an order name
func ParseOrder(name string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sorted", "":
		return OrderSorted, nil
	case "pool":
		return OrderPool, nil
	default:
		return OrderSorted, fmt.Errorf("unknown scan order %q", name)
	}
}

// Default scan range in volts
const (
	DefaultScanMin float32 = 0.0
	DefaultScanMax float32 = 10.0
)

// Router quantizes every lane of a main signal against a shared pool
type Router struct {
	Mode  Mode
	Min   float32
	Max   float32
	Order Order
}

// NewRouter creates a router in nearest mode with the default scan range
func NewRouter() *Router {
	return &Router{
		Mode: ModeNearest,
		Min:  DefaultScanMin,
		Max:  DefaultScanMax,
	}
}

// Select quantizes one voltage against the pool. An empty pool selects 0 V.
func (r *Router) Select(pool *Pool, in float32) float32 {
	if pool.Len() == 0 {
		return 0
	}
	switch r.Mode {
	case ModeProportional:
		return proportionalSorted(pool.Sorted(), in)
	case ModeScan:
		ordered := pool.Sorted()
		if r.Order == OrderPool {
			ordered = pool.Values()
		}
		return ScanUnsorted(ordered, r.Min, r.Max, in)
	default:
		return Nearest(pool.Values(), in)
	}
}

// Process writes one quantized lane to out for every lane of main
func (r *Router) Process(pool *Pool, main, out *port.Port) {
	channels := main.Channels()
	out.SetChannels(channels)
	for c := 0; c < channels; c++ {
		out.SetVoltage(c, r.Select(pool, main.Voltage(c)))
	}
}
