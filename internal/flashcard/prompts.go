package flashcard

import (
	"fmt"
	"strings"

	"github.com/vytor/pharmaflash/internal/models"
)

const defaultPrompt = "What is this?"

// BuildPrompts generates the unshuffled deck for the given topics.
//
// A topic with enabled configuration entries gets one prompt per entry per
// eligible item; image_to_name entries need an image and name_to_field entries
// need a non-empty field, otherwise the pair is dropped. A topic without
// enabled entries gets one default prompt per eligible item. Items explicitly
// excluded from flashcards are skipped; note that a zero-value StudyItem
// counts as excluded, so callers must load the stored flag.
func BuildPrompts(topics []models.Topic) []models.FlashcardPrompt {
	var prompts []models.FlashcardPrompt
	for _, topic := range topics {
		entries := topic.FlashcardConfig.EnabledTypes()
		seen := make(map[string]bool)
		for _, item := range topic.Items {
			if !item.UseInFlashcards || strings.TrimSpace(item.Name) == "" {
				continue
			}
			if len(entries) == 0 {
				prompts = append(prompts, defaultPromptFor(topic.ID, item))
				continue
			}
			for _, entry := range entries {
				p, ok := promptFor(topic.ID, item, entry)
				if !ok || seen[p.Key] {
					continue
				}
				seen[p.Key] = true
				prompts = append(prompts, p)
			}
		}
	}
	return prompts
}

func promptFor(topicID int64, item models.StudyItem, entry models.FlashcardQuestionType) (models.FlashcardPrompt, bool) {
	p := models.FlashcardPrompt{
		ItemID:   item.ID,
		ItemName: item.Name,
		TopicID:  topicID,
		Type:     entry.Type,
	}

	switch entry.Type {
	case models.PromptImageToName:
		if !item.HasImage() {
			return p, false
		}
		p.Key = fmt.Sprintf("%d:%s", item.ID, entry.Type)
		p.Prompt = entry.Label
		if p.Prompt == "" {
			p.Prompt = defaultPrompt
		}
		p.ImageURL = item.ImageURL
		p.Answer = item.Name
		p.IsImage = true
	case models.PromptNameToField:
		value := item.FieldValue(entry.Field)
		if value == "" {
			return p, false
		}
		label := entry.Label
		if label == "" {
			label = models.FieldLabel(entry.Field)
		}
		p.Key = fmt.Sprintf("%d:%s:%s", item.ID, entry.Type, entry.Field)
		p.Field = entry.Field
		p.Prompt = fmt.Sprintf("%s — %s", item.Name, label)
		p.Answer = value
	default:
		return p, false
	}
	return p, true
}

func defaultPromptFor(topicID int64, item models.StudyItem) models.FlashcardPrompt {
	p := models.FlashcardPrompt{
		Key:      fmt.Sprintf("%d:default", item.ID),
		ItemID:   item.ID,
		ItemName: item.Name,
		TopicID:  topicID,
		Type:     models.PromptDefault,
		Prompt:   defaultPrompt,
		Answer:   item.Name,
	}
	if item.HasImage() {
		p.ImageURL = item.ImageURL
		p.IsImage = true
		return p
	}
	if hint := textHint(item); hint != "" {
		p.Prompt = defaultPrompt + "\n" + hint
	}
	return p
}

// textHint picks the formula or description of an image-less item. A hint
// that mentions the item's name would give the answer away and is skipped.
func textHint(item models.StudyItem) string {
	name := strings.ToLower(strings.TrimSpace(item.Name))
	for _, field := range []string{models.FieldFormula, models.FieldDescription} {
		hint := item.FieldValue(field)
		if hint != "" && !strings.Contains(strings.ToLower(hint), name) {
			return hint
		}
	}
	return ""
}
