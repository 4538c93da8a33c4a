package quiz_test

import (
	"fmt"

	"github.com/vytor/pharmaflash/internal/models"
)

func imageItems(n int) []models.StudyItem {
	items := make([]models.StudyItem, n)
	for i := range items {
		id := int64(i + 1)
		items[i] = models.StudyItem{
			ID:              id,
			Name:            fmt.Sprintf("Drug %d", id),
			Formula:         fmt.Sprintf("C%dH%d", id, id*2),
			ImageURL:        fmt.Sprintf("https://img.example/%d.png", id),
			UseInFlashcards: true,
		}
	}
	return items
}

func byID(items []models.StudyItem) map[int64]models.StudyItem {
	out := make(map[int64]models.StudyItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out
}
