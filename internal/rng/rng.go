// Package rng provides the injectable randomness used by dungeon generation,
// combat resolution and enemy AI.
package rng

import (
	"math/rand"
	"time"
)

// Source is the randomness provider shared by every randomized component.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// New returns a seeded source. A seed of 0 seeds from the clock.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Chance reports whether a uniform draw falls below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Range returns a uniform int in [lo, hi). An empty range yields lo.
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo)
}

// Pick returns a uniformly chosen element of items.
// Panics if items is empty.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
