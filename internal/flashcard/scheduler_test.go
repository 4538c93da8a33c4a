package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/pharmaflash/internal/flashcard"
	"github.com/vytor/pharmaflash/internal/models"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestApplyOutcome_FirstCorrect(t *testing.T) {
	p := flashcard.NewProgress(1, 2, now)

	updated := flashcard.ApplyOutcome(p, true, now)

	assert.Equal(t, 1, updated.IntervalDays)
	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
	assert.Equal(t, 1, updated.TimesReviewed)
	assert.Equal(t, 1, updated.TimesCorrect)
	assert.Equal(t, 1, updated.Streak)
	assert.True(t, updated.LastCorrect)
	assert.Equal(t, now.Add(24*time.Hour), updated.DueAt)
}

func TestApplyOutcome_GrowsInterval(t *testing.T) {
	p := models.ItemProgress{EaseFactor: 2.5, IntervalDays: 1}

	updated := flashcard.ApplyOutcome(p, true, now)
	assert.Equal(t, 6, updated.IntervalDays, "interval should be 6 when previous was 1")

	updated = flashcard.ApplyOutcome(updated, true, now)
	assert.Greater(t, updated.IntervalDays, 6)
}

func TestApplyOutcome_WrongResets(t *testing.T) {
	p := models.ItemProgress{EaseFactor: 2.5, IntervalDays: 10, Streak: 4, TimesCorrect: 4, TimesReviewed: 4}

	updated := flashcard.ApplyOutcome(p, false, now)

	assert.Equal(t, 1, updated.IntervalDays)
	assert.Less(t, updated.EaseFactor, p.EaseFactor)
	assert.Equal(t, 0, updated.Streak)
	assert.Equal(t, 4, updated.TimesCorrect)
	assert.Equal(t, 5, updated.TimesReviewed)
	assert.False(t, updated.LastCorrect)
}

func TestApplyOutcome_EaseFloor(t *testing.T) {
	p := models.ItemProgress{EaseFactor: 1.35}
	for i := 0; i < 5; i++ {
		p = flashcard.ApplyOutcome(p, false, now)
	}
	assert.InDelta(t, 1.3, p.EaseFactor, 1e-9)
}

func TestIsMastered(t *testing.T) {
	p := flashcard.NewProgress(1, 1, now)
	for i := 0; i < flashcard.MasteredStreak-1; i++ {
		p = flashcard.ApplyOutcome(p, true, now)
	}
	assert.False(t, flashcard.IsMastered(p))
	p = flashcard.ApplyOutcome(p, true, now)
	assert.True(t, flashcard.IsMastered(p))
}
