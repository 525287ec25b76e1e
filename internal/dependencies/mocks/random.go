package mocks

import (
	"math/rand"

	"github.com/salvo-game/salvo/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
//
// Queued values are returned first. Once the queue is exhausted, Intn
// falls back to a seeded PRNG. The fallback matters for
// rejection-sampling callers (board generation, auto-moves): a constant
// return value could never produce a fresh coordinate and the sampling
// loop would spin forever.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int
	fallback    *rand.Rand
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{fallback: rand.New(rand.NewSource(1))}
}

// Intn returns the next queued result, or a seeded pseudorandom value
// if the queue is exhausted
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex < len(r.IntnResults) {
		result := r.IntnResults[r.intnIndex]
		r.intnIndex++
		return result
	}
	return r.fallback.Intn(n)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Reset clears all queued results and reseeds the fallback
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.fallback = rand.New(rand.NewSource(1))
}
