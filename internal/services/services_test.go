package services

import (
	"context"
	"fmt"

	"github.com/vytor/pharmaflash/internal/models"
)

// snapshotStub serves a fixed catalog to the session services.
type snapshotStub struct {
	CatalogService
	chapters []models.Chapter
	err      error
	calls    int
}

func (s *snapshotStub) Snapshot(ctx context.Context, profileID, chapterID int64) ([]models.Chapter, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.chapters, nil
}

func imageTopic(topicID int64, n int) models.Topic {
	t := models.Topic{ID: topicID, ChapterID: 1, Name: "Topic"}
	for i := 1; i <= n; i++ {
		id := topicID*100 + int64(i)
		t.Items = append(t.Items, models.StudyItem{
			ID:              id,
			TopicID:         topicID,
			Name:            fmt.Sprintf("Drug %d", id),
			ImageURL:        fmt.Sprintf("https://img/%d.png", id),
			UseInFlashcards: true,
		})
	}
	return t
}

func catalogOf(topics ...models.Topic) *snapshotStub {
	return &snapshotStub{chapters: []models.Chapter{{ID: 1, ProfileID: 1, Name: "Chapter", Topics: topics}}}
}
