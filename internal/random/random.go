// Package random provides the injectable random source shared by the
// selection components.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the subset of *rand.Rand used by the comment engine
type Source interface {
	IntN(n int) int
	Int64N(n int64) int64
	Float64() float64
}

// Locked serializes access to a Source. *rand.Rand is not safe for
// concurrent use and handlers share one instance.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// New returns a locked PCG source. A zero seed draws the seed from the
// runtime's global generator.
func New(seed uint64) *Locked {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return NewLocked(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewSeeded returns an unlocked deterministic source for tests
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// IntN implements Source
func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Int64N implements Source
func (l *Locked) Int64N(n int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Int64N(n)
}

// Float64 implements Source
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Choice returns a uniformly chosen element of items. It panics on an
// empty slice, like rand.IntN(0).
func Choice[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
