package models

import "time"

// FlashcardPrompt is one card of a flashcard deck. Key is unique within a deck.
type FlashcardPrompt struct {
	Key      string     `json:"key"`
	ItemID   int64      `json:"item_id"`
	ItemName string     `json:"item_name"`
	TopicID  int64      `json:"topic_id"`
	Type     PromptType `json:"type"`
	Field    string     `json:"field,omitempty"`
	Prompt   string     `json:"prompt"`
	ImageURL string     `json:"image_url,omitempty"`
	Answer   string     `json:"answer"`
	IsImage  bool       `json:"is_image"`
}

// FlashcardOutcome records how the user self-graded one card.
type FlashcardOutcome struct {
	Prompt  FlashcardPrompt `json:"prompt"`
	Correct bool            `json:"correct"`
}

// Review is a persisted flashcard outcome.
type Review struct {
	ID         int64      `json:"id"`
	ProfileID  int64      `json:"profile_id"`
	ItemID     int64      `json:"item_id"`
	PromptType PromptType `json:"prompt_type"`
	Field      string     `json:"field,omitempty"`
	Correct    bool       `json:"correct"`
	ReviewedAt time.Time  `json:"reviewed_at"`
}

// ItemProgress is the per-profile scheduling state of one study item.
type ItemProgress struct {
	ProfileID     int64     `json:"profile_id"`
	ItemID        int64     `json:"item_id"`
	DueAt         time.Time `json:"due_at"`
	IntervalDays  int       `json:"interval_days"`
	EaseFactor    float64   `json:"ease_factor"`
	TimesReviewed int       `json:"times_reviewed"`
	TimesCorrect  int       `json:"times_correct"`
	Streak        int       `json:"streak"`
	LastCorrect   bool      `json:"last_correct"`
}
