package services

import (
	"context"
	"time"

	"github.com/vytor/pharmaflash/internal/flashcard"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/random"
	"github.com/vytor/pharmaflash/internal/repository"
)

// FlashcardView is the client-facing state of a flashcard session. The answer
// of the current card is only included once revealed.
type FlashcardView struct {
	ID          string                    `json:"id"`
	State       string                    `json:"state"`
	Index       int                       `json:"index"`
	Total       int                       `json:"total"`
	Revealed    bool                      `json:"revealed"`
	Stats       flashcard.Stats           `json:"stats"`
	Card        *models.FlashcardPrompt   `json:"card,omitempty"`
	Mastered    []models.FlashcardOutcome `json:"mastered,omitempty"`
	NeedsReview []models.FlashcardOutcome `json:"needs_review,omitempty"`
}

// FlashcardService runs self-graded flashcard decks and records their outcomes.
type FlashcardService interface {
	Start(ctx context.Context, profileID, chapterID int64) (*FlashcardView, error)
	Get(ctx context.Context, profileID int64, id string) (*FlashcardView, error)
	Reveal(ctx context.Context, profileID int64, id string) (*FlashcardView, error)
	Mark(ctx context.Context, profileID int64, id string, correct bool) (*FlashcardView, error)
	// Retry replaces a finished deck with one made of its missed cards.
	Retry(ctx context.Context, profileID int64, id string) (*FlashcardView, error)
	// Abandon discards the deck. Outcomes of an unfinished deck are not recorded.
	Abandon(ctx context.Context, profileID int64, id string) error
}

type flashcardRun struct {
	session   *flashcard.Session
	persisted bool
}

type flashcardService struct {
	catalog    CatalogService
	reviewRepo repository.ReviewRepository
	src        random.Source
	now        func() time.Time
	sessions   *SessionStore[*flashcardRun]
}

// NewFlashcardService creates a new FlashcardService. src must be safe for concurrent use.
func NewFlashcardService(catalog CatalogService, reviewRepo repository.ReviewRepository, src random.Source) FlashcardService {
	return &flashcardService{
		catalog:    catalog,
		reviewRepo: reviewRepo,
		src:        src,
		now:        time.Now,
		sessions:   NewSessionStore[*flashcardRun]("flashcard session", DefaultSessionTTL),
	}
}

func (s *flashcardService) Abandon(ctx context.Context, profileID int64, id string) error {
	logger.FromContext(ctx).Debug("abandoning flashcards: id=%s", id)
	return s.sessions.Delete(id, profileID)
}

func (s *flashcardService) Start(ctx context.Context, profileID, chapterID int64) (*FlashcardView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting flashcards: profile_id=%d, chapter_id=%d", profileID, chapterID)

	chapters, err := s.catalog.Snapshot(ctx, profileID, chapterID)
	if err != nil {
		return nil, err
	}
	prompts := flashcard.BuildPrompts(models.FlattenTopics(chapters))

	run := &flashcardRun{session: flashcard.NewSession(s.src)}
	if err := run.session.Start(prompts); err != nil {
		log.Info("flashcards not started: %v", err)
		return nil, err
	}
	id := s.sessions.Create(profileID, run)
	log.Info("flashcards started: id=%s, cards=%d", id, run.session.Total())
	return flashcardView(id, run.session), nil
}

func (s *flashcardService) Get(ctx context.Context, profileID int64, id string) (*FlashcardView, error) {
	return s.with(id, profileID, func(run *flashcardRun) error { return nil })
}

func (s *flashcardService) Reveal(ctx context.Context, profileID int64, id string) (*FlashcardView, error) {
	return s.with(id, profileID, func(run *flashcardRun) error {
		_, err := run.session.Reveal()
		return err
	})
}

func (s *flashcardService) Mark(ctx context.Context, profileID int64, id string, correct bool) (*FlashcardView, error) {
	return s.with(id, profileID, func(run *flashcardRun) error {
		if err := run.session.Mark(correct); err != nil {
			return err
		}
		if run.session.State() == flashcard.Finished && !run.persisted {
			run.persisted = true
			s.persist(ctx, profileID, run.session.Outcomes())
		}
		return nil
	})
}

func (s *flashcardService) Retry(ctx context.Context, profileID int64, id string) (*FlashcardView, error) {
	return s.with(id, profileID, func(run *flashcardRun) error {
		next, err := run.session.Retry()
		if err != nil {
			return err
		}
		run.session = next
		run.persisted = false
		return nil
	})
}

// persist records the outcome log and advances per-item scheduling. Failures
// are logged only.
func (s *flashcardService) persist(ctx context.Context, profileID int64, outcomes []models.FlashcardOutcome) {
	log := logger.FromContext(ctx).WithField("profile_id", profileID)
	if len(outcomes) == 0 {
		return
	}

	var itemIDs []int64
	seen := make(map[int64]bool)
	for _, o := range outcomes {
		if !seen[o.Prompt.ItemID] {
			seen[o.Prompt.ItemID] = true
			itemIDs = append(itemIDs, o.Prompt.ItemID)
		}
	}

	progress, err := s.reviewRepo.Progress(ctx, profileID, itemIDs)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return
	}

	now := s.now()
	reviews := make([]models.Review, 0, len(outcomes))
	for _, o := range outcomes {
		p, ok := progress[o.Prompt.ItemID]
		if !ok {
			p = flashcard.NewProgress(profileID, o.Prompt.ItemID, now)
		}
		progress[o.Prompt.ItemID] = flashcard.ApplyOutcome(p, o.Correct, now)
		reviews = append(reviews, models.Review{
			ProfileID:  profileID,
			ItemID:     o.Prompt.ItemID,
			PromptType: o.Prompt.Type,
			Field:      o.Prompt.Field,
			Correct:    o.Correct,
			ReviewedAt: now,
		})
	}

	updated := make([]models.ItemProgress, 0, len(itemIDs))
	for _, id := range itemIDs {
		updated = append(updated, progress[id])
	}
	if err := s.reviewRepo.RecordSession(ctx, reviews, updated); err != nil {
		log.Error("failed to record flashcard session: %v", err)
		return
	}
	log.Info("recorded %d reviews over %d items", len(reviews), len(updated))
}

func (s *flashcardService) with(id string, profileID int64, fn func(*flashcardRun) error) (*FlashcardView, error) {
	var view *FlashcardView
	err := s.sessions.With(id, profileID, func(run *flashcardRun) error {
		if err := fn(run); err != nil {
			return err
		}
		view = flashcardView(id, run.session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func flashcardView(id string, sess *flashcard.Session) *FlashcardView {
	v := &FlashcardView{
		ID:       id,
		State:    sess.State().String(),
		Index:    sess.Index(),
		Total:    sess.Total(),
		Revealed: sess.Revealed(),
		Stats:    sess.Stats(),
	}
	if card, ok := sess.Current(); ok {
		if !sess.Revealed() {
			card.Answer = ""
		}
		v.Card = &card
	}
	if sess.State() == flashcard.Finished {
		v.Mastered = sess.Mastered()
		v.NeedsReview = sess.NeedsReview()
	}
	return v
}
