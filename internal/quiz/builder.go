package quiz

import (
	"errors"
	"fmt"

	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/random"
)

// ErrMissingField means the subject lacks what the modality needs. Callers
// drop the item/modality pair; it is never shown to users.
var ErrMissingField = errors.New("item lacks field required by modality")

// Builder composes single questions.
type Builder struct {
	src         random.Source
	optionCount int
}

func NewBuilder(src random.Source, optionCount int) *Builder {
	if optionCount < 2 {
		optionCount = 4
	}
	return &Builder{src: src, optionCount: optionCount}
}

// Build creates a question about correct, drawing distractors from pool.
// Pool items whose option value is empty or equal to the correct value are
// never used as distractors.
func (b *Builder) Build(correct models.StudyItem, m Modality, pool []models.StudyItem) (models.Question, error) {
	if !m.Eligible(correct) {
		return models.Question{}, ErrMissingField
	}
	answer := m.value(correct)

	candidates := make([]models.StudyItem, 0, len(pool))
	for _, item := range pool {
		if v := m.value(item); v != "" && v != answer {
			candidates = append(candidates, item)
		}
	}
	distractors, err := SampleDistractors(b.src, candidates, correct, b.optionCount-1)
	if err != nil {
		return models.Question{}, err
	}

	values := make([]string, 0, b.optionCount)
	values = append(values, answer)
	for _, d := range distractors {
		values = append(values, m.value(d))
	}

	perm := random.Perm(b.src, len(values))
	options := make([]string, len(values))
	correctIdx := 0
	for dst, srcIdx := range perm {
		options[dst] = values[srcIdx]
		if srcIdx == 0 {
			correctIdx = dst
		}
	}

	q := models.Question{
		SubjectID:        correct.ID,
		Modality:         m.String(),
		Options:          options,
		OptionsAreImages: m.OptionsAreImages(),
		CorrectAnswer:    correctIdx,
	}
	fillText(&q, correct, m)
	return q, nil
}

func fillText(q *models.Question, item models.StudyItem, m Modality) {
	switch m.Kind {
	case KindNameFromImage:
		q.Prompt = "What is the name of this molecule?"
		q.PromptImage = item.ImageURL
		q.Explanation = fmt.Sprintf("This is %s.", item.Name)
	case KindImageFromName:
		q.Prompt = fmt.Sprintf("Pick the correct structure for %s.", item.Name)
		q.Explanation = fmt.Sprintf("This is the structure of %s.", item.Name)
	case KindNameFromFormula:
		q.Prompt = fmt.Sprintf("What is the name of this molecule?\nFormula: %s", item.Formula)
		q.Explanation = fmt.Sprintf("This is %s.", item.Name)
	case KindFormulaFromName:
		q.Prompt = fmt.Sprintf("What is the molecular formula of %s?", item.Name)
		q.Explanation = fmt.Sprintf("%s has the formula %s.", item.Name, item.Formula)
	case KindFieldFromName:
		q.Prompt = fmt.Sprintf("%s — %s", item.Name, m.Label)
		q.Explanation = fmt.Sprintf("%s: %s is %s.", item.Name, m.Label, item.FieldValue(m.Field))
	}
}
