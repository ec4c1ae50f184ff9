package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedRand replays a fixed sequence of draws
type fixedRand struct {
	floats []float64
	ints   []int
}

func (r *fixedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *fixedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

func TestWeightedIndex(t *testing.T) {
	weights := []float64{1, 0, 3}

	tests := []struct {
		draw float64
		want int
	}{
		{0.0, 0},
		{0.2, 0},
		{0.25, 2}, // target 1.0 falls past the first bucket
		{0.9, 2},
		{0.999999, 2},
	}
	for _, tt := range tests {
		got := weightedIndex(weights, &fixedRand{floats: []float64{tt.draw}})
		assert.Equal(t, tt.want, got, "draw %v", tt.draw)
	}
}

func TestWeightedIndex_ZeroTotal(t *testing.T) {
	assert.Equal(t, -1, weightedIndex([]float64{0, 0}, &fixedRand{}))
	assert.Equal(t, -1, weightedIndex([]float64{-1, 0}, &fixedRand{}))
	assert.Equal(t, -1, weightedIndex(nil, &fixedRand{}))
}

func TestWeightedIndex_NegativeCountsAsZero(t *testing.T) {
	for _, draw := range []float64{0, 0.5, 0.99} {
		assert.Equal(t, 1, weightedIndex([]float64{-5, 2}, &fixedRand{floats: []float64{draw}}))
	}
}

func TestWeightedIndex_Distribution(t *testing.T) {
	rng := NewRand(7)
	counts := make([]int, 3)
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[weightedIndex([]float64{1, 2, 1}, rng)]++
	}
	assert.InDelta(t, 0.25, float64(counts[0])/draws, 0.02)
	assert.InDelta(t, 0.50, float64(counts[1])/draws, 0.02)
	assert.InDelta(t, 0.25, float64(counts[2])/draws, 0.02)
}

func TestNewRand_Reproducible(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
