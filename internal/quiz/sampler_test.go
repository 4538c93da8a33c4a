package quiz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/quiz"
	"github.com/vytor/pharmaflash/internal/random"
)

func TestSampleDistractors_DistinctAndExcluded(t *testing.T) {
	pool := imageItems(8)
	src := random.New(11)

	for seed := 0; seed < 50; seed++ {
		exclude := pool[seed%len(pool)]
		for count := 0; count <= len(pool)-1; count++ {
			got, err := quiz.SampleDistractors(src, pool, exclude, count)
			require.NoError(t, err)
			assert.Len(t, got, count)

			seen := map[int64]bool{}
			for _, d := range got {
				assert.NotEqual(t, exclude.ID, d.ID)
				assert.False(t, seen[d.ID], "duplicate id %d", d.ID)
				seen[d.ID] = true
			}
		}
	}
}

func TestSampleDistractors_DoesNotMutatePool(t *testing.T) {
	pool := imageItems(6)
	before := append(pool[:0:0], pool...)

	_, err := quiz.SampleDistractors(random.New(1), pool, pool[0], 5)
	require.NoError(t, err)
	assert.Equal(t, before, pool)
}

func TestSampleDistractors_DuplicateIDsCountOnce(t *testing.T) {
	pool := imageItems(3)
	pool = append(pool, pool[1], pool[2])

	_, err := quiz.SampleDistractors(random.New(1), pool, pool[0], 3)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientPool))
}

func TestSampleDistractors_InsufficientPool(t *testing.T) {
	pool := imageItems(3)

	_, err := quiz.SampleDistractors(random.New(1), pool, pool[0], 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInsufficientPool))
}

func TestSampleDistractors_CoversWholePool(t *testing.T) {
	pool := imageItems(5)
	src := random.New(99)
	hits := map[int64]int{}

	for i := 0; i < 400; i++ {
		got, err := quiz.SampleDistractors(src, pool, pool[0], 1)
		require.NoError(t, err)
		hits[got[0].ID]++
	}

	assert.Len(t, hits, 4)
	for id, n := range hits {
		assert.Greater(t, n, 40, "item %d drawn too rarely", id)
	}
}
