package quiz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/quiz"
	"github.com/vytor/pharmaflash/internal/random"
)

type SessionSuite struct {
	suite.Suite
	session *quiz.Session
}

func (s *SessionSuite) SetupTest() {
	s.session = quiz.NewSession(quiz.NewGenerator(random.New(13), quiz.DefaultOptions()))
	s.Require().Equal(quiz.NotStarted, s.session.State())
	s.Require().NoError(s.session.Generate(imageItems(6)))
}

func (s *SessionSuite) TestStartsInProgress() {
	s.Equal(quiz.InProgress, s.session.State())
	s.Equal(quiz.Score{Correct: 0, Total: 6}, s.session.Score())
	_, answered := s.session.Selected()
	s.False(answered)
}

func (s *SessionSuite) TestAnswerOncePerQuestion() {
	q, ok := s.session.Current()
	s.Require().True(ok)

	correct, err := s.session.SubmitAnswer(q.CorrectAnswer)
	s.Require().NoError(err)
	s.True(correct)

	_, err = s.session.SubmitAnswer(q.CorrectAnswer)
	s.True(errors.Is(err, apperrors.ErrInvalidState))
	s.Equal(1, s.session.Score().Correct)
	s.Equal(0, s.session.Index())
}

func (s *SessionSuite) TestAdvanceRequiresAnswer() {
	err := s.session.Advance()
	s.True(errors.Is(err, apperrors.ErrInvalidState))
	s.Equal(0, s.session.Index())
}

func (s *SessionSuite) TestOutOfRangeAnswerRejected() {
	_, err := s.session.SubmitAnswer(4)
	s.Error(err)
	_, answered := s.session.Selected()
	s.False(answered)
}

func (s *SessionSuite) TestScoreMonotonicAndFinish() {
	prev := 0
	for i := 0; s.session.State() == quiz.InProgress; i++ {
		q, ok := s.session.Current()
		s.Require().True(ok)

		answer := q.CorrectAnswer
		if i%2 == 1 {
			answer = (q.CorrectAnswer + 1) % len(q.Options)
		}
		correct, err := s.session.SubmitAnswer(answer)
		s.Require().NoError(err)

		score := s.session.Score()
		if correct {
			s.Equal(prev+1, score.Correct)
		} else {
			s.Equal(prev, score.Correct)
		}
		s.LessOrEqual(score.Correct, score.Total)
		prev = score.Correct

		s.Require().NoError(s.session.Advance())
	}

	s.Equal(quiz.Finished, s.session.State())
	s.Equal(quiz.Score{Correct: 3, Total: 6}, s.session.Score())
	_, ok := s.session.Current()
	s.False(ok)

	_, err := s.session.SubmitAnswer(0)
	s.True(errors.Is(err, apperrors.ErrInvalidState))
}

func (s *SessionSuite) TestRestartKeepsQuestionSet() {
	before := s.session.Questions()

	s.True(errors.Is(s.session.Restart(), apperrors.ErrInvalidState))

	s.finish()
	s.Require().NoError(s.session.Restart())
	s.Equal(quiz.InProgress, s.session.State())
	s.Equal(quiz.Score{Correct: 0, Total: 6}, s.session.Score())
	s.Equal(0, s.session.Index())
	s.ElementsMatch(before, s.session.Questions())
}

func (s *SessionSuite) TestNewQuizAfterFailureLeavesNotStarted() {
	s.finish()
	err := s.session.Generate(imageItems(2))
	s.True(errors.Is(err, apperrors.ErrInsufficientPool))
	s.Equal(quiz.NotStarted, s.session.State())
	s.Empty(s.session.Questions())
	s.Equal(quiz.Score{}, s.session.Score())
}

func (s *SessionSuite) finish() {
	for s.session.State() == quiz.InProgress {
		q, _ := s.session.Current()
		_, err := s.session.SubmitAnswer(q.CorrectAnswer)
		s.Require().NoError(err)
		s.Require().NoError(s.session.Advance())
	}
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func TestSession_GenerateFailureCreatesNothing(t *testing.T) {
	session := quiz.NewSession(quiz.NewGenerator(random.New(1), quiz.DefaultOptions()))

	err := session.Generate(imageItems(3))
	require.Error(t, err)
	assert.Equal(t, quiz.NotStarted, session.State())
	assert.Empty(t, session.Questions())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "not_started", quiz.NotStarted.String())
	assert.Equal(t, "in_progress", quiz.InProgress.String())
	assert.Equal(t, "finished", quiz.Finished.String())
}
