package repository

import (
	"context"
	"time"

	"github.com/vytor/pharmaflash/internal/models"
)

// ProfileRepository handles profile data access
type ProfileRepository interface {
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, username string) (*models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

// ChapterRepository handles chapter data access. Lookups are scoped to a profile.
type ChapterRepository interface {
	Insert(ctx context.Context, chapter models.Chapter) (int64, error)
	Get(ctx context.Context, id, profileID int64) (*models.Chapter, error)
	List(ctx context.Context, profileID int64) ([]models.Chapter, error)
	Rename(ctx context.Context, id, profileID int64, name string) error
	Delete(ctx context.Context, id, profileID int64) error
}

// TopicRepository handles topic data access, including the per-topic flashcard configuration.
type TopicRepository interface {
	Insert(ctx context.Context, topic models.Topic) (int64, error)
	Get(ctx context.Context, id, profileID int64) (*models.Topic, error)
	List(ctx context.Context, profileID, chapterID int64) ([]models.Topic, error)
	Rename(ctx context.Context, id, profileID int64, name string) error
	Delete(ctx context.Context, id, profileID int64) error
	SetFlashcardConfig(ctx context.Context, id, profileID int64, cfg *models.FlashcardPromptConfig) error
}

// ItemRepository handles study item data access
type ItemRepository interface {
	Insert(ctx context.Context, item models.StudyItem) (int64, error)
	Get(ctx context.Context, id, profileID int64) (*models.StudyItem, error)
	List(ctx context.Context, filter models.ItemFilter) ([]models.StudyItem, error)
	Count(ctx context.Context, filter models.ItemFilter) (int, error)
	Update(ctx context.Context, item models.StudyItem) error
	// FillEmpty writes each value only where the column is still blank.
	FillEmpty(ctx context.Context, id, profileID int64, values map[string]string) error
	Delete(ctx context.Context, id, profileID int64) error
}

// ReviewRepository stores flashcard outcomes and per-item scheduling state
type ReviewRepository interface {
	Progress(ctx context.Context, profileID int64, itemIDs []int64) (map[int64]models.ItemProgress, error)
	RecordSession(ctx context.Context, reviews []models.Review, progress []models.ItemProgress) error
	Stats(ctx context.Context, profileID int64, now time.Time) (*models.StudyStats, error)
}
