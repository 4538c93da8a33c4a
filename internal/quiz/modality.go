package quiz

import (
	"fmt"
	"strings"

	"github.com/vytor/pharmaflash/internal/models"
)

// Kind identifies the shape of a quiz question.
type Kind string

const (
	KindNameFromImage   Kind = "name_from_image"
	KindImageFromName   Kind = "image_from_name"
	KindNameFromFormula Kind = "name_from_formula"
	KindFormulaFromName Kind = "formula_from_name"
	KindFieldFromName   Kind = "field_from_name"
)

// Modality is a question shape. Field and Label are only used by field_from_name.
type Modality struct {
	Kind  Kind
	Field string
	Label string
}

var (
	NameFromImage   = Modality{Kind: KindNameFromImage}
	ImageFromName   = Modality{Kind: KindImageFromName}
	NameFromFormula = Modality{Kind: KindNameFromFormula}
	FormulaFromName = Modality{Kind: KindFormulaFromName}
)

// FieldFromName asks for the value of a designated field. An empty label
// falls back to the field's display label.
func FieldFromName(field, label string) Modality {
	if label == "" {
		label = models.FieldLabel(field)
	}
	return Modality{Kind: KindFieldFromName, Field: field, Label: label}
}

// ParseModality parses "name_from_image", "formula_from_name" or
// "field_from_name:<field>".
func ParseModality(s string) (Modality, error) {
	kind, field, _ := strings.Cut(strings.TrimSpace(s), ":")
	m := Modality{Kind: Kind(kind)}
	if m.Kind == KindFieldFromName {
		m = FieldFromName(field, "")
	}
	if err := m.Validate(); err != nil {
		return Modality{}, err
	}
	return m, nil
}

func (m Modality) String() string {
	if m.Kind == KindFieldFromName {
		return string(m.Kind) + ":" + m.Field
	}
	return string(m.Kind)
}

func (m Modality) Validate() error {
	switch m.Kind {
	case KindNameFromImage, KindImageFromName, KindNameFromFormula, KindFormulaFromName:
		return nil
	case KindFieldFromName:
		if !models.IsKnownField(m.Field) {
			return fmt.Errorf("unknown field %q", m.Field)
		}
		return nil
	default:
		return fmt.Errorf("unknown modality %q", m.Kind)
	}
}

// OptionsAreImages reports whether options hold image references.
func (m Modality) OptionsAreImages() bool {
	return m.Kind == KindImageFromName
}

// value is what the item contributes to the option list.
func (m Modality) value(item models.StudyItem) string {
	switch m.Kind {
	case KindNameFromImage, KindNameFromFormula:
		return strings.TrimSpace(item.Name)
	case KindImageFromName:
		return strings.TrimSpace(item.ImageURL)
	case KindFormulaFromName:
		return item.FieldValue(models.FieldFormula)
	case KindFieldFromName:
		return item.FieldValue(m.Field)
	}
	return ""
}

// Eligible reports whether item can be the subject of a question of this modality.
func (m Modality) Eligible(item models.StudyItem) bool {
	if strings.TrimSpace(item.Name) == "" || m.value(item) == "" {
		return false
	}
	switch m.Kind {
	case KindNameFromImage:
		return item.HasImage()
	case KindNameFromFormula:
		return item.FieldValue(models.FieldFormula) != ""
	}
	return true
}
