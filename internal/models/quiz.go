package models

// Question is one generated multiple choice quiz question. It is never persisted.
// When OptionsAreImages is set, Options hold image references instead of text.
type Question struct {
	SubjectID        int64    `json:"subject_id"`
	Modality         string   `json:"modality"`
	Prompt           string   `json:"prompt"`
	PromptImage      string   `json:"prompt_image,omitempty"`
	Options          []string `json:"options"`
	OptionsAreImages bool     `json:"options_are_images"`
	CorrectAnswer    int      `json:"correct_answer"`
	Explanation      string   `json:"explanation"`
}
