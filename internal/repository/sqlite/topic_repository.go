package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/repository"
)

type topicRepository struct {
	db *sql.DB
}

// NewTopicRepository creates a new TopicRepository implementation
func NewTopicRepository(db *sql.DB) repository.TopicRepository {
	return &topicRepository{db: db}
}

// ownedTopic restricts a topic id to topics of the profile's chapters.
func ownedTopic(id, profileID int64) squirrel.Sqlizer {
	return squirrel.Expr(`id = ? AND chapter_id IN (SELECT id FROM chapters WHERE profile_id = ?)`, id, profileID)
}

func (r *topicRepository) Insert(ctx context.Context, t models.Topic) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("inserting topic: chapter_id=%d, name=%s", t.ChapterID, t.Name)

	cfg, err := encodeConfig(t.FlashcardConfig)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO topics (chapter_id, name, flashcard_config) VALUES (?, ?, ?)`, t.ChapterID, t.Name, cfg)
	if err != nil {
		log.Error("failed to insert topic: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get topic id: %v", err)
		return 0, err
	}
	log.Debug("topic inserted: id=%d", id)
	return id, nil
}

func (r *topicRepository) Get(ctx context.Context, id, profileID int64) (*models.Topic, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("getting topic: id=%d, profile_id=%d", id, profileID)

	query, args, err := sqlBuilder.Select("id", "chapter_id", "name", "flashcard_config", "created_at").
		From("topics").
		Where(ownedTopic(id, profileID)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	t, err := scanTopic(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("topic not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get topic: %v", err)
		return nil, err
	}
	return t, nil
}

// List returns the profile's topics, optionally restricted to one chapter.
func (r *topicRepository) List(ctx context.Context, profileID, chapterID int64) ([]models.Topic, error) {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("listing topics: profile_id=%d, chapter_id=%d", profileID, chapterID)

	query := sqlBuilder.Select("t.id", "t.chapter_id", "t.name", "t.flashcard_config", "t.created_at").
		From("topics t").
		Join("chapters c ON c.id = t.chapter_id").
		Where(squirrel.Eq{"c.profile_id": profileID}).
		OrderBy("t.created_at ASC", "t.id ASC")
	if chapterID != 0 {
		query = query.Where(squirrel.Eq{"t.chapter_id": chapterID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list topics: %v", err)
		return nil, err
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			log.Error("failed to scan topic row: %v", err)
			return nil, err
		}
		topics = append(topics, *t)
	}
	log.Debug("found %d topics", len(topics))
	return topics, rows.Err()
}

func (r *topicRepository) Rename(ctx context.Context, id, profileID int64, name string) error {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("renaming topic: id=%d, name=%s", id, name)

	return r.update(ctx, sqlBuilder.Update("topics").Set("name", name).Where(ownedTopic(id, profileID)))
}

func (r *topicRepository) SetFlashcardConfig(ctx context.Context, id, profileID int64, cfg *models.FlashcardPromptConfig) error {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("setting flashcard config: topic_id=%d", id)

	encoded, err := encodeConfig(cfg)
	if err != nil {
		return err
	}
	return r.update(ctx, sqlBuilder.Update("topics").Set("flashcard_config", encoded).Where(ownedTopic(id, profileID)))
}

func (r *topicRepository) Delete(ctx context.Context, id, profileID int64) error {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	log.Debug("deleting topic: id=%d", id)

	query, args, err := sqlBuilder.Delete("topics").Where(ownedTopic(id, profileID)).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete topic: %v", err)
		return err
	}
	return affectedOne(res)
}

func (r *topicRepository) update(ctx context.Context, b squirrel.UpdateBuilder) error {
	log := logger.FromContext(ctx).WithPrefix("topic_repo")
	query, args, err := b.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update topic: %v", err)
		return err
	}
	return affectedOne(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopic(row rowScanner) (*models.Topic, error) {
	var t models.Topic
	var cfg sql.NullString
	if err := row.Scan(&t.ID, &t.ChapterID, &t.Name, &cfg, &t.CreatedAt); err != nil {
		return nil, err
	}
	if cfg.Valid && cfg.String != "" {
		var c models.FlashcardPromptConfig
		if err := json.Unmarshal([]byte(cfg.String), &c); err != nil {
			return nil, err
		}
		t.FlashcardConfig = &c
	}
	return &t, nil
}

func encodeConfig(cfg *models.FlashcardPromptConfig) (sql.NullString, error) {
	if cfg == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
