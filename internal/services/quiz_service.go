package services

import (
	"context"

	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/quiz"
	"github.com/vytor/pharmaflash/internal/random"
)

// QuizView is the client-facing state of a quiz session. The correct answer
// and explanation of the current question stay hidden until it is answered.
type QuizView struct {
	ID       string           `json:"id"`
	State    string           `json:"state"`
	Index    int              `json:"index"`
	Total    int              `json:"total"`
	Score    quiz.Score       `json:"score"`
	Question *models.Question `json:"question,omitempty"`
	Selected *int             `json:"selected,omitempty"`
	Correct  *bool            `json:"correct,omitempty"`
}

// QuizService runs multiple choice quizzes over a profile's study items.
type QuizService interface {
	Start(ctx context.Context, profileID, chapterID int64) (*QuizView, error)
	Get(ctx context.Context, profileID int64, id string) (*QuizView, error)
	Answer(ctx context.Context, profileID int64, id string, option int) (*QuizView, error)
	Next(ctx context.Context, profileID int64, id string) (*QuizView, error)
	Restart(ctx context.Context, profileID int64, id string) (*QuizView, error)
	// New regenerates the quiz from a fresh snapshot of the same scope.
	New(ctx context.Context, profileID int64, id string) (*QuizView, error)
	// Abandon discards the quiz.
	Abandon(ctx context.Context, profileID int64, id string) error
}

type quizRun struct {
	session   *quiz.Session
	chapterID int64
}

type quizService struct {
	catalog  CatalogService
	src      random.Source
	opts     quiz.Options
	sessions *SessionStore[*quizRun]
}

// NewQuizService creates a new QuizService. src must be safe for concurrent use.
func NewQuizService(catalog CatalogService, src random.Source, opts quiz.Options) QuizService {
	return &quizService{
		catalog:  catalog,
		src:      src,
		opts:     opts,
		sessions: NewSessionStore[*quizRun]("quiz", DefaultSessionTTL),
	}
}

func (s *quizService) Start(ctx context.Context, profileID, chapterID int64) (*QuizView, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting quiz: profile_id=%d, chapter_id=%d", profileID, chapterID)

	run := &quizRun{
		session:   quiz.NewSession(quiz.NewGenerator(s.src, s.opts)),
		chapterID: chapterID,
	}
	if err := s.generate(ctx, profileID, run); err != nil {
		return nil, err
	}
	id := s.sessions.Create(profileID, run)
	log.Info("quiz started: id=%s, questions=%d", id, run.session.Score().Total)
	return quizView(id, run.session), nil
}

func (s *quizService) generate(ctx context.Context, profileID int64, run *quizRun) error {
	chapters, err := s.catalog.Snapshot(ctx, profileID, run.chapterID)
	if err != nil {
		return err
	}
	if err := run.session.Generate(models.FlattenItems(chapters)); err != nil {
		logger.FromContext(ctx).Info("quiz not generated: %v", err)
		return err
	}
	return nil
}

func (s *quizService) Get(ctx context.Context, profileID int64, id string) (*QuizView, error) {
	return s.with(id, profileID, func(run *quizRun) error { return nil })
}

func (s *quizService) Answer(ctx context.Context, profileID int64, id string, option int) (*QuizView, error) {
	return s.with(id, profileID, func(run *quizRun) error {
		correct, err := run.session.SubmitAnswer(option)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Debug("quiz %s: answered option %d, correct=%t", id, option, correct)
		return nil
	})
}

func (s *quizService) Next(ctx context.Context, profileID int64, id string) (*QuizView, error) {
	return s.with(id, profileID, func(run *quizRun) error {
		if err := run.session.Advance(); err != nil {
			return err
		}
		if run.session.State() == quiz.Finished {
			score := run.session.Score()
			logger.FromContext(ctx).Info("quiz %s finished: %d/%d", id, score.Correct, score.Total)
		}
		return nil
	})
}

func (s *quizService) Restart(ctx context.Context, profileID int64, id string) (*QuizView, error) {
	return s.with(id, profileID, func(run *quizRun) error {
		return run.session.Restart()
	})
}

func (s *quizService) New(ctx context.Context, profileID int64, id string) (*QuizView, error) {
	return s.with(id, profileID, func(run *quizRun) error {
		return s.generate(ctx, profileID, run)
	})
}

func (s *quizService) Abandon(ctx context.Context, profileID int64, id string) error {
	logger.FromContext(ctx).Debug("abandoning quiz: id=%s", id)
	return s.sessions.Delete(id, profileID)
}

func (s *quizService) with(id string, profileID int64, fn func(*quizRun) error) (*QuizView, error) {
	var view *QuizView
	err := s.sessions.With(id, profileID, func(run *quizRun) error {
		if err := fn(run); err != nil {
			return err
		}
		view = quizView(id, run.session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func quizView(id string, sess *quiz.Session) *QuizView {
	v := &QuizView{
		ID:    id,
		State: sess.State().String(),
		Index: sess.Index(),
		Total: sess.Score().Total,
		Score: sess.Score(),
	}
	q, ok := sess.Current()
	if !ok {
		return v
	}
	if selected, answered := sess.Selected(); answered {
		correct := selected == q.CorrectAnswer
		v.Selected = &selected
		v.Correct = &correct
	} else {
		q.CorrectAnswer = -1
		q.Explanation = ""
	}
	v.Question = &q
	return v
}
