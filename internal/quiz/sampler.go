package quiz

import (
	apperrors "github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/random"
)

// SampleDistractors draws count items from pool uniformly at random without
// replacement. Results are distinct by id and never carry exclude's id.
// It fails with ErrInsufficientPool when pool has fewer than count such items.
func SampleDistractors(src random.Source, pool []models.StudyItem, exclude models.StudyItem, count int) ([]models.StudyItem, error) {
	if count <= 0 {
		return nil, nil
	}

	seen := make(map[int64]bool, len(pool))
	candidates := make([]models.StudyItem, 0, len(pool))
	for _, item := range pool {
		if item.ID == exclude.ID || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		candidates = append(candidates, item)
	}
	if len(candidates) < count {
		return nil, apperrors.NewInsufficientPoolError("distractors", count, len(candidates))
	}

	// Partial Fisher-Yates: the first count slots end up a uniform sample.
	for i := 0; i < count; i++ {
		j := i + src.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:count], nil
}
