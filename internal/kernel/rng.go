package kernel

import (
	"math/rand"
	"time"
)

// DelaySource draws the bounded random bookkeeping delays of EXEC.
type DelaySource interface {
	// Between returns a value in [lo, hi].
	Between(lo, hi int) int
}

// SeededDelays is a DelaySource backed by a seeded *rand.Rand.
// Two runs with the same non-zero seed draw identical delays.
//
// Thread-safety: NOT thread-safe. The engine is single-threaded.
type SeededDelays struct {
	seed int64
	rng  *rand.Rand
}

// NewSeededDelays creates a delay source. Seed 0 seeds from the wall clock.
func NewSeededDelays(seed int64) *SeededDelays {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SeededDelays{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the effective seed, useful to reproduce a clock-seeded run.
func (s *SeededDelays) Seed() int64 { return s.seed }

func (s *SeededDelays) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// FixedDelays always returns the same value, clamped into range.
type FixedDelays int

func (f FixedDelays) Between(lo, hi int) int {
	v := int(f)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
