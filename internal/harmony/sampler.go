package harmony

import (
	"math/rand"
	"time"
)

// Rand is the random source used for every draw. *rand.Rand satisfies it.
// Implementations need not be safe for concurrent use; give each generation
// its own source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a source seeded with seed
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed returns a seed derived from the clock
func NewSeed() int64 {
	return time.Now().UnixNano()
}

// weightedIndex draws an index with probability proportional to its weight.
// Negative weights count as zero. It returns -1 when the weights sum to zero.
func weightedIndex(weights []float64, rng Rand) int {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		cumulative[i] = total
	}
	if total <= 0 {
		return -1
	}

	target := rng.Float64() * total
	for i, c := range cumulative {
		if target < c {
			return i
		}
	}
	// rounding can leave target == total; pick the last positive weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}
