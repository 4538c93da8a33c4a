// Package random is the single source of randomness for quiz and flashcard
// generation. Callers inject a Source so tests can pin exact sequences.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source returns a uniformly distributed integer in [0, n). n must be > 0.
type Source interface {
	IntN(n int) int
}

// New returns a deterministic source for the given seed.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeeded returns a source seeded from the wall clock.
func NewTimeSeeded() Source {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>17))
}

// FromSeed returns New(seed) for a non-zero seed and a time seeded source otherwise.
func FromSeed(seed uint64) Source {
	if seed == 0 {
		return NewTimeSeeded()
	}
	return New(seed)
}

type locked struct {
	mu  sync.Mutex
	src Source
}

// Locked wraps src so it can be shared between goroutines.
func Locked(src Source) Source {
	if l, ok := src.(*locked); ok {
		return l
	}
	return &locked{src: src}
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Shuffle permutes s in place with a Fisher-Yates shuffle.
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Shuffled returns a shuffled copy of s.
func Shuffled[T any](src Source, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	Shuffle(src, out)
	return out
}

// Perm returns a random permutation of [0, n).
func Perm(src Source, n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(src, p)
	return p
}
