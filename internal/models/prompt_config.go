package models

// PromptType is the shape of a configured flashcard prompt.
type PromptType string

const (
	PromptImageToName PromptType = "image_to_name"
	PromptNameToField PromptType = "name_to_field"
	// PromptDefault is the fallback card of a topic without configuration.
	// It is never valid in a stored configuration.
	PromptDefault PromptType = "default"
)

// FlashcardQuestionType is one entry of a topic's flashcard configuration.
// Field is only meaningful for name_to_field entries.
type FlashcardQuestionType struct {
	Type    PromptType `json:"type"`
	Enabled bool       `json:"enabled"`
	Label   string     `json:"label"`
	Field   string     `json:"field,omitempty"`
}

// FlashcardPromptConfig is the per-topic flashcard configuration round-tripped
// to storage as JSON.
type FlashcardPromptConfig struct {
	QuestionTypes []FlashcardQuestionType `json:"question_types"`
}

// EnabledTypes returns the enabled entries in configuration order.
func (c *FlashcardPromptConfig) EnabledTypes() []FlashcardQuestionType {
	if c == nil {
		return nil
	}
	var out []FlashcardQuestionType
	for _, qt := range c.QuestionTypes {
		if qt.Enabled {
			out = append(out, qt)
		}
	}
	return out
}
