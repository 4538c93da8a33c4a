package random_test

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/pharmaflash/internal/random"
)

func TestNew_IsDeterministic(t *testing.T) {
	a := random.New(42)
	b := random.New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestShuffled_IsPermutationAndLeavesInputAlone(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := random.Shuffled(random.New(7), in)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, in)
	sorted := append([]int(nil), out...)
	sort.Ints(sorted)
	assert.Equal(t, in, sorted)
}

func TestShuffle_SameSeedSameOrder(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"a", "b", "c", "d", "e"}
	random.Shuffle(random.New(3), a)
	random.Shuffle(random.New(3), b)
	assert.Equal(t, a, b)
}

func TestPerm(t *testing.T) {
	p := random.Perm(random.New(1), 10)
	assert.Len(t, p, 10)
	sort.Ints(p)
	for i, v := range p {
		assert.Equal(t, i, v)
	}
	assert.Empty(t, random.Perm(random.New(1), 0))
}

func TestFromSeed(t *testing.T) {
	assert.Equal(t, random.New(9).IntN(1<<30), random.FromSeed(9).IntN(1<<30))
	assert.NotNil(t, random.FromSeed(0))
}

func TestLocked_ConcurrentUse(t *testing.T) {
	src := random.Locked(random.New(5))
	assert.Same(t, src, random.Locked(src))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := src.IntN(10)
				assert.True(t, v >= 0 && v < 10)
			}
		}()
	}
	wg.Wait()
}
