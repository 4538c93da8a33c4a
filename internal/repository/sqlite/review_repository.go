package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pharmaflash/internal/flashcard"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Progress(ctx context.Context, profileID int64, itemIDs []int64) (map[int64]models.ItemProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("loading progress: profile_id=%d, items=%d", profileID, len(itemIDs))

	out := make(map[int64]models.ItemProgress, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlBuilder.Select(
		"profile_id", "item_id", "due_at", "interval_days", "ease_factor",
		"times_reviewed", "times_correct", "streak", "last_correct",
	).
		From("item_progress").
		Where(squirrel.Eq{"profile_id": profileID, "item_id": itemIDs}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ItemProgress
		if err := rows.Scan(&p.ProfileID, &p.ItemID, &p.DueAt, &p.IntervalDays, &p.EaseFactor,
			&p.TimesReviewed, &p.TimesCorrect, &p.Streak, &p.LastCorrect); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		out[p.ItemID] = p
	}
	return out, rows.Err()
}

// RecordSession stores the reviews and progress rows of one finished deck atomically.
func (r *reviewRepository) RecordSession(ctx context.Context, reviews []models.Review, progress []models.ItemProgress) error {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("recording session: reviews=%d, progress=%d", len(reviews), len(progress))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, rv := range reviews {
			reviewedAt := rv.ReviewedAt
			if reviewedAt.IsZero() {
				reviewedAt = time.Now()
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO reviews (profile_id, item_id, prompt_type, field, correct, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?)
`, rv.ProfileID, rv.ItemID, string(rv.PromptType), rv.Field, rv.Correct, reviewedAt.UTC()); err != nil {
				log.Error("failed to insert review for item %d: %v", rv.ItemID, err)
				return err
			}
		}
		for _, p := range progress {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO item_progress (profile_id, item_id, due_at, interval_days, ease_factor, times_reviewed, times_correct, streak, last_correct)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(profile_id, item_id) DO UPDATE SET
	due_at = excluded.due_at,
	interval_days = excluded.interval_days,
	ease_factor = excluded.ease_factor,
	times_reviewed = excluded.times_reviewed,
	times_correct = excluded.times_correct,
	streak = excluded.streak,
	last_correct = excluded.last_correct
`, p.ProfileID, p.ItemID, p.DueAt.UTC(), p.IntervalDays, p.EaseFactor,
				p.TimesReviewed, p.TimesCorrect, p.Streak, p.LastCorrect); err != nil {
				log.Error("failed to upsert progress for item %d: %v", p.ItemID, err)
				return err
			}
		}
		return nil
	})
}

func (r *reviewRepository) Stats(ctx context.Context, profileID int64, now time.Time) (*models.StudyStats, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("computing stats: profile_id=%d", profileID)

	var s models.StudyStats
	err := r.db.QueryRowContext(ctx, `
SELECT
	COUNT(*),
	COALESCE(SUM(CASE WHEN TRIM(i.image_url) <> '' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN i.use_in_flashcards THEN 1 ELSE 0 END), 0)
FROM items i
JOIN topics t ON t.id = i.topic_id
JOIN chapters c ON c.id = t.chapter_id
WHERE c.profile_id = ?
`, profileID).Scan(&s.TotalItems, &s.ItemsWithImages, &s.FlashcardEligible)
	if err != nil {
		log.Error("failed to count items: %v", err)
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0)
FROM reviews
WHERE profile_id = ?
`, profileID).Scan(&s.TotalReviews, &s.CorrectReviews)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
		return nil, err
	}
	if s.TotalReviews > 0 {
		s.Accuracy = float64(s.CorrectReviews) / float64(s.TotalReviews)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT due_at, streak, times_reviewed, last_correct
FROM item_progress
WHERE profile_id = ?
`, profileID)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ItemProgress
		if err := rows.Scan(&p.DueAt, &p.Streak, &p.TimesReviewed, &p.LastCorrect); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		if flashcard.IsMastered(p) {
			s.ItemsMastered++
		}
		if p.TimesReviewed > 0 && !p.LastCorrect {
			s.ItemsNeedReview++
		}
		if !p.DueAt.After(now) {
			s.ItemsDue++
		}
	}
	return &s, rows.Err()
}
