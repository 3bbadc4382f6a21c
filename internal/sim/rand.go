// Package sim holds the seedable random source and the jitter helpers every
// generator in the command center draws from.
package sim

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Rand is the subset of *rand.Rand the generators need. Callers own the
// source; nothing in this module reads the global math/rand state.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed means "seed from the clock".
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Locked serializes access to a source shared between goroutines.
type Locked struct {
	mu sync.Mutex
	r  Rand
}

func NewLocked(r Rand) *Locked { return &Locked{r: r} }

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Vary perturbs base by up to ±pct percent.
func Vary(r Rand, base, pct float64) float64 {
	return base * (1 + (r.Float64()*2-1)*pct/100)
}

// Between draws uniformly from [lo, hi).
func Between(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntBetween draws uniformly from [lo, hi].
func IntBetween(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Pick returns a random element of pool. pool must not be empty.
func Pick[T any](r Rand, pool []T) T {
	return pool[r.Intn(len(pool))]
}

// Chance reports true with probability p.
func Chance(r Rand, p float64) bool {
	return r.Float64() < p
}

// Weighted returns the index chosen by weights. Non-positive weights are
// never chosen; if all are non-positive it returns 0.
func Weighted(r Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	x := r.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
	}
	// float rounding on the last bucket
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPercent clamps v into [0,100].
func ClampPercent(v float64) float64 { return Clamp(v, 0, 100) }

// NonNegative floors v at zero.
func NonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
