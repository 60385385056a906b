package probe

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/grough/lilac-modules-vcv/pkg/dsp/utility"
)

// AudioReader streams voltages as little-endian float32 samples in [-1, 1]
type AudioReader struct {
	samples []float32
	pos     int
}

// NewAudioReader creates a reader over a voltage trace
func NewAudioReader(samples []float32) *AudioReader {
	return &AudioReader{samples: samples}
}

// Read implements io.Reader. Only whole samples are written.
func (r *AudioReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.samples) {
		return 0, io.EOF
	}
	n := 0
	for n+4 <= len(p) && r.pos < len(r.samples) {
		v := utility.Clamp(utility.Rescale(r.samples[r.pos], -utility.AudioPeak, utility.AudioPeak, -1, 1), -1, 1)
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(v))
		n += 4
		r.pos++
	}
	return n, nil
}

// Resample converts a trace recorded at rate from to rate to by linear
// interpolation. Equal or non-positive rates return the trace unchanged.
func Resample(values []float32, from, to int) []float32 {
	if from == to || from <= 0 || to <= 0 || len(values) == 0 {
		return values
	}
	n := max(int(math.Round(float64(len(values))*float64(to)/float64(from))), 1)
	out := make([]float32, n)
	step := float64(from) / float64(to)
	last := len(values) - 1
	for i := range out {
		pos := float64(i) * step
		i0 := min(int(pos), last)
		i1 := min(i0+1, last)
		out[i] = utility.Crossfade(values[i0], values[i1], float32(pos-float64(i0)))
	}
	return out
}
