package quiz

import (
	apperrors "github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/random"
)

// Options configures quiz generation.
type Options struct {
	MaxQuestions int
	OptionCount  int
	MinPool      int
	Modalities   []Modality
}

// DefaultOptions is the visual quiz: name from image and image from name.
func DefaultOptions() Options {
	return Options{
		MaxQuestions: 10,
		OptionCount:  4,
		MinPool:      4,
		Modalities:   []Modality{NameFromImage, ImageFromName},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxQuestions <= 0 {
		o.MaxQuestions = def.MaxQuestions
	}
	if o.OptionCount < 2 {
		o.OptionCount = def.OptionCount
	}
	if o.MinPool < o.OptionCount {
		o.MinPool = o.OptionCount
	}
	if len(o.Modalities) == 0 {
		o.Modalities = def.Modalities
	}
	return o
}

// Generator turns a flat item snapshot into an ordered list of questions.
type Generator struct {
	src     random.Source
	opts    Options
	builder *Builder
}

func NewGenerator(src random.Source, opts Options) *Generator {
	opts = opts.withDefaults()
	return &Generator{
		src:     src,
		opts:    opts,
		builder: NewBuilder(src, opts.OptionCount),
	}
}

func (g *Generator) Options() Options { return g.opts }

// Pool returns the items that can be the subject of at least one configured modality.
func (g *Generator) Pool(items []models.StudyItem) []models.StudyItem {
	var pool []models.StudyItem
	for _, item := range items {
		for _, m := range g.opts.Modalities {
			if m.Eligible(item) {
				pool = append(pool, item)
				break
			}
		}
	}
	return pool
}

// Generate builds min(MaxQuestions, len(pool)) questions. No item is the
// subject of more than one question.
func (g *Generator) Generate(items []models.StudyItem) ([]models.Question, error) {
	pool := g.Pool(items)
	if len(pool) < g.opts.MinPool {
		return nil, apperrors.NewInsufficientPoolError("quiz items", g.opts.MinPool, len(pool))
	}

	questions := g.generate(pool, make(map[int64]bool, len(pool)))
	if len(questions) == 0 {
		return nil, apperrors.NewInsufficientPoolError("quiz items", g.opts.MinPool, 0)
	}
	return questions, nil
}

// generate draws subjects in random order, skipping ids already in used and
// recording each accepted subject there.
func (g *Generator) generate(pool []models.StudyItem, used map[int64]bool) []models.Question {
	want := min(g.opts.MaxQuestions, len(pool))
	questions := make([]models.Question, 0, want)

	for _, ix := range random.Perm(g.src, len(pool)) {
		if len(questions) == want {
			break
		}
		subject := pool[ix]
		if used[subject.ID] {
			continue
		}
		if q, ok := g.questionFor(subject, pool); ok {
			used[subject.ID] = true
			questions = append(questions, q)
		}
	}
	return questions
}

// questionFor tries the subject's eligible modalities in random order.
func (g *Generator) questionFor(subject models.StudyItem, pool []models.StudyItem) (models.Question, bool) {
	var mods []Modality
	for _, m := range g.opts.Modalities {
		if m.Eligible(subject) {
			mods = append(mods, m)
		}
	}
	random.Shuffle(g.src, mods)

	for _, m := range mods {
		q, err := g.builder.Build(subject, m, pool)
		if err == nil {
			return q, true
		}
	}
	return models.Question{}, false
}
