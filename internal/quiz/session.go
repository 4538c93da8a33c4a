package quiz

import (
	apperrors "github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/random"
)

// State of a quiz session.
type State int

const (
	NotStarted State = iota
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Score is the running or final result.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Session is one quiz attempt. It is not safe for concurrent use.
type Session struct {
	gen       *Generator
	state     State
	questions []models.Question
	index     int
	selected  int
	correct   int
}

// NewSession returns a session in NotStarted.
func NewSession(gen *Generator) *Session {
	return &Session{gen: gen, selected: -1}
}

// Generate discards any current question set and builds a new one from items.
// On failure the session is left in NotStarted with no questions.
func (s *Session) Generate(items []models.StudyItem) error {
	questions, err := s.gen.Generate(items)
	if err != nil {
		s.reset(nil, NotStarted)
		return err
	}
	s.reset(questions, InProgress)
	return nil
}

func (s *Session) reset(questions []models.Question, state State) {
	s.questions = questions
	s.state = state
	s.index = 0
	s.selected = -1
	s.correct = 0
}

func (s *Session) State() State { return s.state }

// Index is the position of the current question.
func (s *Session) Index() int { return s.index }

func (s *Session) Score() Score {
	return Score{Correct: s.correct, Total: len(s.questions)}
}

// Questions returns a copy of the question set in session order.
func (s *Session) Questions() []models.Question {
	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Current returns the question being asked. ok is false outside InProgress.
func (s *Session) Current() (models.Question, bool) {
	if s.state != InProgress {
		return models.Question{}, false
	}
	return s.questions[s.index], true
}

// Selected returns the submitted option for the current question.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// SubmitAnswer records the answer for the current question. Only the first
// submission per question counts; later ones are rejected with ErrInvalidState.
func (s *Session) SubmitAnswer(index int) (bool, error) {
	if s.state != InProgress {
		return false, apperrors.NewInvalidStateError("quiz is not in progress")
	}
	if s.selected >= 0 {
		return false, apperrors.NewInvalidStateError("question already answered")
	}
	q := s.questions[s.index]
	if index < 0 || index >= len(q.Options) {
		return false, apperrors.NewValidationError("answer", "option index out of range")
	}

	s.selected = index
	correct := index == q.CorrectAnswer
	if correct {
		s.correct++
	}
	return correct, nil
}

// Advance moves past an answered question, finishing after the last one.
func (s *Session) Advance() error {
	if s.state != InProgress {
		return apperrors.NewInvalidStateError("quiz is not in progress")
	}
	if s.selected < 0 {
		return apperrors.NewInvalidStateError("answer the current question first")
	}
	s.selected = -1
	s.index++
	if s.index >= len(s.questions) {
		s.index = len(s.questions)
		s.state = Finished
	}
	return nil
}

// Restart replays a finished quiz with the same questions in a new order.
func (s *Session) Restart() error {
	if s.state != Finished {
		return apperrors.NewInvalidStateError("quiz can only be restarted once finished")
	}
	questions := random.Shuffled(s.gen.src, s.questions)
	s.reset(questions, InProgress)
	return nil
}
