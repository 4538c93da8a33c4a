package models

type StudyStats struct {
	TotalItems        int     `json:"total_items"`
	ItemsWithImages   int     `json:"items_with_images"`
	FlashcardEligible int     `json:"flashcard_eligible"`
	TotalReviews      int     `json:"total_reviews"`
	CorrectReviews    int     `json:"correct_reviews"`
	Accuracy          float64 `json:"accuracy"`
	ItemsMastered     int     `json:"items_mastered"`
	ItemsNeedReview   int     `json:"items_need_review"`
	ItemsDue          int     `json:"items_due"`
}
