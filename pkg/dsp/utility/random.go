package utility

import "math/rand"

// Random is a seedable source of uniform values for per-sample use.
type Random struct {
	rand *rand.Rand
}

// NewRandom creates a random source seeded from the global generator.
func NewRandom() *Random {
	return &Random{rand: rand.New(rand.NewSource(rand.Int63()))}
}

// SetSeed sets the seed for reproducible sequences.
func (r *Random) SetSeed(seed int64) {
	r.rand = rand.New(rand.NewSource(seed))
}

// Uniform returns a value in [0, 1).
func (r *Random) Uniform() float32 {
	return r.rand.Float32()
}

// Bipolar returns a value in [-1, 1).
func (r *Random) Bipolar() float32 {
	return float32(r.rand.Float64()*2.0 - 1.0)
}

// Fill writes uniform values into buffer.
func (r *Random) Fill(buffer []float32) {
	for i := range buffer {
		buffer[i] = r.Uniform()
	}
}
