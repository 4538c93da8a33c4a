package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/repository"
)

type chapterRepository struct {
	db *sql.DB
}

// NewChapterRepository creates a new ChapterRepository implementation
func NewChapterRepository(db *sql.DB) repository.ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Insert(ctx context.Context, c models.Chapter) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("chapter_repo")
	log.Debug("inserting chapter: profile_id=%d, name=%s", c.ProfileID, c.Name)

	res, err := r.db.ExecContext(ctx, `INSERT INTO chapters (profile_id, name) VALUES (?, ?)`, c.ProfileID, c.Name)
	if err != nil {
		log.Error("failed to insert chapter: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get chapter id: %v", err)
		return 0, err
	}
	log.Debug("chapter inserted: id=%d", id)
	return id, nil
}

func (r *chapterRepository) Get(ctx context.Context, id, profileID int64) (*models.Chapter, error) {
	log := logger.FromContext(ctx).WithPrefix("chapter_repo")
	log.Debug("getting chapter: id=%d, profile_id=%d", id, profileID)

	var c models.Chapter
	err := r.db.QueryRowContext(ctx, `
SELECT id, profile_id, name, created_at
FROM chapters
WHERE id = ? AND profile_id = ?
`, id, profileID).Scan(&c.ID, &c.ProfileID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("chapter not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get chapter: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *chapterRepository) List(ctx context.Context, profileID int64) ([]models.Chapter, error) {
	log := logger.FromContext(ctx).WithPrefix("chapter_repo")
	log.Debug("listing chapters: profile_id=%d", profileID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, profile_id, name, created_at
FROM chapters
WHERE profile_id = ?
ORDER BY created_at ASC, id ASC
`, profileID)
	if err != nil {
		log.Error("failed to list chapters: %v", err)
		return nil, err
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var c models.Chapter
		if err := rows.Scan(&c.ID, &c.ProfileID, &c.Name, &c.CreatedAt); err != nil {
			log.Error("failed to scan chapter row: %v", err)
			return nil, err
		}
		chapters = append(chapters, c)
	}
	log.Debug("found %d chapters", len(chapters))
	return chapters, rows.Err()
}

func (r *chapterRepository) Rename(ctx context.Context, id, profileID int64, name string) error {
	log := logger.FromContext(ctx).WithPrefix("chapter_repo")
	log.Debug("renaming chapter: id=%d, name=%s", id, name)

	res, err := r.db.ExecContext(ctx, `UPDATE chapters SET name = ? WHERE id = ? AND profile_id = ?`, name, id, profileID)
	if err != nil {
		log.Error("failed to rename chapter: %v", err)
		return err
	}
	return affectedOne(res)
}

// Delete removes the chapter; its topics and items cascade.
func (r *chapterRepository) Delete(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("chapter_repo")
	log.Debug("deleting chapter: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = ? AND profile_id = ?`, id, profileID)
	if err != nil {
		log.Error("failed to delete chapter: %v", err)
		return err
	}
	return affectedOne(res)
}
