package flashcard

import (
	"time"

	"github.com/vytor/pharmaflash/internal/models"
)

const (
	DefaultEaseFactor = 2.5
	minEase           = 1.3

	// MasteredStreak is the number of consecutive correct reviews after which
	// an item counts as mastered.
	MasteredStreak = 3
)

// NewProgress is the scheduling state of an item never reviewed.
func NewProgress(profileID, itemID int64, now time.Time) models.ItemProgress {
	return models.ItemProgress{
		ProfileID:  profileID,
		ItemID:     itemID,
		DueAt:      now,
		EaseFactor: DefaultEaseFactor,
	}
}

// ApplyOutcome updates scheduling with an SM-2 variant. A correct card is
// graded as quality 3, a missed card as 0.
func ApplyOutcome(p models.ItemProgress, correct bool, now time.Time) models.ItemProgress {
	quality := 0
	if correct {
		quality = 3
	}
	if p.EaseFactor == 0 {
		p.EaseFactor = DefaultEaseFactor
	}

	ef := p.EaseFactor + 0.1 - float64(3-quality)*(0.08+float64(3-quality)*0.02)
	if ef < minEase {
		ef = minEase
	}

	interval := 1
	switch {
	case !correct:
		interval = 1
	case p.IntervalDays == 0:
		interval = 1
	case p.IntervalDays == 1:
		interval = 6
	default:
		interval = int(float64(p.IntervalDays) * ef)
	}

	p.TimesReviewed++
	if correct {
		p.TimesCorrect++
		p.Streak++
	} else {
		p.Streak = 0
	}
	p.LastCorrect = correct
	p.IntervalDays = interval
	p.EaseFactor = ef
	p.DueAt = now.Add(time.Duration(interval) * 24 * time.Hour)
	return p
}

// IsMastered reports whether the item reached MasteredStreak.
func IsMastered(p models.ItemProgress) bool {
	return p.Streak >= MasteredStreak
}
