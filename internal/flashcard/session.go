package flashcard

import (
	apperrors "github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/random"
)

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

// Stats are the running counters of a session.
type Stats struct {
	Correct   int `json:"correct"`
	Wrong     int `json:"wrong"`
	Remaining int `json:"remaining"`
}

// Session is one pass over a shuffled deck. It is not safe for concurrent use.
type Session struct {
	src      random.Source
	state    State
	prompts  []models.FlashcardPrompt
	index    int
	revealed bool
	correct  int
	wrong    int
	outcomes []models.FlashcardOutcome
}

func NewSession(src random.Source) *Session {
	return &Session{src: src}
}

// Start shuffles prompts into a new deck. An empty deck fails with
// ErrInsufficientPool and leaves the session in NotStarted.
func (s *Session) Start(prompts []models.FlashcardPrompt) error {
	if len(prompts) == 0 {
		*s = Session{src: s.src}
		return apperrors.NewInsufficientPoolError("flashcards", 1, 0)
	}
	*s = Session{
		src:     s.src,
		state:   InProgress,
		prompts: random.Shuffled(s.src, prompts),
	}
	return nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Index() int { return s.index }

func (s *Session) Total() int { return len(s.prompts) }

func (s *Session) Revealed() bool { return s.revealed }

func (s *Session) Stats() Stats {
	remaining := len(s.prompts) - s.index
	if remaining < 0 {
		remaining = 0
	}
	return Stats{Correct: s.correct, Wrong: s.wrong, Remaining: remaining}
}

// Prompts returns the deck in session order.
func (s *Session) Prompts() []models.FlashcardPrompt {
	out := make([]models.FlashcardPrompt, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Current returns the card being shown. ok is false outside InProgress.
func (s *Session) Current() (models.FlashcardPrompt, bool) {
	if s.state != InProgress {
		return models.FlashcardPrompt{}, false
	}
	return s.prompts[s.index], true
}

// Reveal shows the answer of the current card. Calling it again is a no-op.
func (s *Session) Reveal() (models.FlashcardPrompt, error) {
	if s.state != InProgress {
		return models.FlashcardPrompt{}, apperrors.NewInvalidStateError("flashcards are not in progress")
	}
	s.revealed = true
	return s.prompts[s.index], nil
}

func (s *Session) MarkCorrect() error { return s.mark(true) }

func (s *Session) MarkWrong() error { return s.mark(false) }

// Mark grades the current card; see MarkCorrect and MarkWrong.
func (s *Session) Mark(correct bool) error { return s.mark(correct) }

func (s *Session) mark(correct bool) error {
	if s.state != InProgress {
		return apperrors.NewInvalidStateError("flashcards are not in progress")
	}
	if !s.revealed {
		return apperrors.NewInvalidStateError("reveal the card before grading it")
	}

	s.outcomes = append(s.outcomes, models.FlashcardOutcome{
		Prompt:  s.prompts[s.index],
		Correct: correct,
	})
	if correct {
		s.correct++
	} else {
		s.wrong++
	}

	s.revealed = false
	s.index++
	if s.index >= len(s.prompts) {
		s.state = Finished
	}
	return nil
}

// Outcomes returns the outcome log in grading order.
func (s *Session) Outcomes() []models.FlashcardOutcome {
	out := make([]models.FlashcardOutcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Mastered returns the outcomes graded correct.
func (s *Session) Mastered() []models.FlashcardOutcome { return s.partition(true) }

// NeedsReview returns the outcomes graded wrong.
func (s *Session) NeedsReview() []models.FlashcardOutcome { return s.partition(false) }

func (s *Session) partition(correct bool) []models.FlashcardOutcome {
	var out []models.FlashcardOutcome
	for _, o := range s.outcomes {
		if o.Correct == correct {
			out = append(out, o)
		}
	}
	return out
}

// Retry builds a new session over the missed cards of a finished session.
// The receiver is left untouched.
func (s *Session) Retry() (*Session, error) {
	if s.state != Finished {
		return nil, apperrors.NewInvalidStateError("retry is only available once finished")
	}
	missed := s.NeedsReview()
	prompts := make([]models.FlashcardPrompt, len(missed))
	for i, o := range missed {
		prompts[i] = o.Prompt
	}

	next := NewSession(s.src)
	if err := next.Start(prompts); err != nil {
		return nil, err
	}
	return next, nil
}
