package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/pharmaflash/internal/db"
	"github.com/vytor/pharmaflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	return d.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Fixture is a profile with one chapter and one topic.
type Fixture struct {
	ProfileID int64
	ChapterID int64
	TopicID   int64
}

// SeedTopic inserts a profile named username with one chapter and one topic.
func SeedTopic(t *testing.T, sqlDB *sql.DB, username string) Fixture {
	ctx := context.Background()
	var f Fixture

	err := sqlDB.QueryRowContext(ctx, `INSERT INTO profiles (username) VALUES (?) RETURNING id`, username).Scan(&f.ProfileID)
	require.NoError(t, err)
	err = sqlDB.QueryRowContext(ctx, `INSERT INTO chapters (profile_id, name) VALUES (?, ?) RETURNING id`, f.ProfileID, "Pharmacology").Scan(&f.ChapterID)
	require.NoError(t, err)
	err = sqlDB.QueryRowContext(ctx, `INSERT INTO topics (chapter_id, name) VALUES (?, ?) RETURNING id`, f.ChapterID, "Analgesics").Scan(&f.TopicID)
	require.NoError(t, err)
	return f
}

// SeedItem inserts a minimal item under topicID and returns its id.
func SeedItem(t *testing.T, sqlDB *sql.DB, topicID int64, item models.StudyItem) int64 {
	var id int64
	err := sqlDB.QueryRowContext(context.Background(), `
INSERT INTO items (topic_id, name, formula, image_url, use_in_flashcards)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`, topicID, item.Name, item.Formula, item.ImageURL, item.UseInFlashcards).Scan(&id)
	require.NoError(t, err)
	return id
}
