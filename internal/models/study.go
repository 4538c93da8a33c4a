package models

import (
	"strings"
	"time"
)

type Chapter struct {
	ID        int64     `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Topics    []Topic   `json:"topics,omitempty"`
}

type Topic struct {
	ID              int64                  `json:"id"`
	ChapterID       int64                  `json:"chapter_id"`
	Name            string                 `json:"name"`
	FlashcardConfig *FlashcardPromptConfig `json:"flashcard_config,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	Items           []StudyItem            `json:"items,omitempty"`
}

// StudyItem is one learnable unit: a drug, molecule, enzyme or course note.
type StudyItem struct {
	ID                    int64     `json:"id"`
	TopicID               int64     `json:"topic_id"`
	Name                  string    `json:"name"`
	Smiles                string    `json:"smiles"`
	Formula               string    `json:"formula"`
	Description           string    `json:"description"`
	ImageURL              string    `json:"image_url"`
	CASNumber             string    `json:"cas_number"`
	MolecularWeight       string    `json:"molecular_weight"`
	PubChemCID            string    `json:"pubchem_cid"`
	DrugCategory          string    `json:"drug_category"`
	PrimaryFunction       string    `json:"primary_function"`
	DrugClass             string    `json:"drug_class"`
	RouteOfAdministration string    `json:"route_of_administration"`
	TargetReceptor        string    `json:"target_receptor"`
	OnsetTime             string    `json:"onset_time"`
	PeakTime              string    `json:"peak_time"`
	Duration              string    `json:"duration"`
	Metabolism            string    `json:"metabolism"`
	Excretion             string    `json:"excretion"`
	SideEffects           string    `json:"side_effects"`
	MoleculeType          string    `json:"molecule_type"`
	BodyEffect            string    `json:"body_effect"`
	UseInFlashcards       bool      `json:"use_in_flashcards"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// HasImage reports whether the item carries an image reference.
func (i StudyItem) HasImage() bool {
	return strings.TrimSpace(i.ImageURL) != ""
}

// Designated fields that quiz and flashcard prompts can ask about.
const (
	FieldFormula               = "formula"
	FieldDescription           = "description"
	FieldDrugCategory          = "drug_category"
	FieldPrimaryFunction       = "primary_function"
	FieldDrugClass             = "drug_class"
	FieldRouteOfAdministration = "route_of_administration"
	FieldTargetReceptor        = "target_receptor"
	FieldOnsetTime             = "onset_time"
	FieldPeakTime              = "peak_time"
	FieldDuration              = "duration"
	FieldMetabolism            = "metabolism"
	FieldExcretion             = "excretion"
	FieldSideEffects           = "side_effects"
	FieldMoleculeType          = "molecule_type"
	FieldBodyEffect            = "body_effect"
)

var fieldLabels = map[string]string{
	FieldFormula:               "Formula",
	FieldDescription:           "Description",
	FieldDrugCategory:          "Drug category",
	FieldPrimaryFunction:       "Primary function",
	FieldDrugClass:             "Drug class",
	FieldRouteOfAdministration: "Route of administration",
	FieldTargetReceptor:        "Target",
	FieldOnsetTime:             "Onset",
	FieldPeakTime:              "Peak",
	FieldDuration:              "Duration",
	FieldMetabolism:            "Metabolism",
	FieldExcretion:             "Excretion",
	FieldSideEffects:           "Side effects",
	FieldMoleculeType:          "Molecule type",
	FieldBodyEffect:            "Effect on the body",
}

// IsKnownField reports whether name is a designated prompt field.
func IsKnownField(name string) bool {
	_, ok := fieldLabels[name]
	return ok
}

// FieldLabel returns the display label of a designated field, or the name itself.
func FieldLabel(name string) string {
	if l, ok := fieldLabels[name]; ok {
		return l
	}
	return name
}

// FieldValue returns the trimmed value of a designated field, or "" when the
// field is unknown or empty.
func (i StudyItem) FieldValue(name string) string {
	var v string
	switch name {
	case FieldFormula:
		v = i.Formula
	case FieldDescription:
		v = i.Description
	case FieldDrugCategory:
		v = i.DrugCategory
	case FieldPrimaryFunction:
		v = i.PrimaryFunction
	case FieldDrugClass:
		v = i.DrugClass
	case FieldRouteOfAdministration:
		v = i.RouteOfAdministration
	case FieldTargetReceptor:
		v = i.TargetReceptor
	case FieldOnsetTime:
		v = i.OnsetTime
	case FieldPeakTime:
		v = i.PeakTime
	case FieldDuration:
		v = i.Duration
	case FieldMetabolism:
		v = i.Metabolism
	case FieldExcretion:
		v = i.Excretion
	case FieldSideEffects:
		v = i.SideEffects
	case FieldMoleculeType:
		v = i.MoleculeType
	case FieldBodyEffect:
		v = i.BodyEffect
	}
	return strings.TrimSpace(v)
}

type ItemFilter struct {
	ProfileID int64
	ChapterID int64
	TopicID   int64
	HasImage  bool
	Search    string
	Limit     int
	Offset    int
}

// FlattenItems returns every item of every topic of the given chapters, in order.
func FlattenItems(chapters []Chapter) []StudyItem {
	var out []StudyItem
	for _, c := range chapters {
		for _, t := range c.Topics {
			out = append(out, t.Items...)
		}
	}
	return out
}

// FlattenTopics returns every topic of the given chapters, items included.
func FlattenTopics(chapters []Chapter) []Topic {
	var out []Topic
	for _, c := range chapters {
		out = append(out, c.Topics...)
	}
	return out
}
