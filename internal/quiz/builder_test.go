package quiz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/quiz"
	"github.com/vytor/pharmaflash/internal/random"
)

func TestBuild_OptionInvariant(t *testing.T) {
	pool := imageItems(6)
	pool[0].PrimaryFunction = "Analgesic"
	pool[1].PrimaryFunction = "Antipyretic"
	pool[2].PrimaryFunction = "Anticoagulant"
	pool[3].PrimaryFunction = "Bronchodilator"

	b := quiz.NewBuilder(random.New(5), 4)
	modalities := []quiz.Modality{
		quiz.NameFromImage,
		quiz.ImageFromName,
		quiz.NameFromFormula,
		quiz.FormulaFromName,
		quiz.FieldFromName(models.FieldPrimaryFunction, ""),
	}

	for _, m := range modalities {
		t.Run(m.String(), func(t *testing.T) {
			for i := 0; i < 20; i++ {
				correct := pool[i%4]
				q, err := b.Build(correct, m, pool)
				require.NoError(t, err)

				require.Len(t, q.Options, 4)
				require.GreaterOrEqual(t, q.CorrectAnswer, 0)
				require.Less(t, q.CorrectAnswer, len(q.Options))
				assert.Equal(t, correct.ID, q.SubjectID)
				assert.Contains(t, q.Explanation, correct.Name)
				assert.Equal(t, m.String(), q.Modality)

				var want string
				switch m.Kind {
				case quiz.KindNameFromImage, quiz.KindNameFromFormula:
					want = correct.Name
				case quiz.KindImageFromName:
					want = correct.ImageURL
				case quiz.KindFormulaFromName:
					want = correct.Formula
				case quiz.KindFieldFromName:
					want = correct.PrimaryFunction
				}
				assert.Equal(t, want, q.Options[q.CorrectAnswer])

				for j, opt := range q.Options {
					if j != q.CorrectAnswer {
						assert.NotEqual(t, want, opt)
					}
				}
			}
		})
	}
}

func TestBuild_Prompts(t *testing.T) {
	pool := imageItems(4)
	b := quiz.NewBuilder(random.New(1), 4)

	q, err := b.Build(pool[0], quiz.NameFromImage, pool)
	require.NoError(t, err)
	assert.Equal(t, pool[0].ImageURL, q.PromptImage)
	assert.False(t, q.OptionsAreImages)

	q, err = b.Build(pool[0], quiz.ImageFromName, pool)
	require.NoError(t, err)
	assert.True(t, q.OptionsAreImages)
	assert.Contains(t, q.Prompt, pool[0].Name)

	pool[0].PrimaryFunction = "Analgesic"
	pool[1].PrimaryFunction = "Antipyretic"
	pool[2].PrimaryFunction = "Anticoagulant"
	pool[3].PrimaryFunction = "Bronchodilator"
	q, err = b.Build(pool[0], quiz.FieldFromName(models.FieldPrimaryFunction, "Function"), pool)
	require.NoError(t, err)
	assert.Equal(t, "Drug 1 — Function", q.Prompt)
}

func TestBuild_MissingFieldIsSkipped(t *testing.T) {
	pool := imageItems(5)
	b := quiz.NewBuilder(random.New(1), 4)

	_, err := b.Build(pool[0], quiz.FieldFromName(models.FieldTargetReceptor, ""), pool)
	assert.True(t, errors.Is(err, quiz.ErrMissingField))

	noImage := pool[1]
	noImage.ImageURL = ""
	_, err = b.Build(noImage, quiz.NameFromImage, pool)
	assert.True(t, errors.Is(err, quiz.ErrMissingField))
}

func TestBuild_SameValueNeverUsedAsDistractor(t *testing.T) {
	pool := imageItems(5)
	pool[4].Name = pool[0].Name

	b := quiz.NewBuilder(random.New(3), 4)
	for i := 0; i < 30; i++ {
		q, err := b.Build(pool[0], quiz.NameFromImage, pool)
		require.NoError(t, err)
		count := 0
		for _, opt := range q.Options {
			if opt == pool[0].Name {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}
}

func TestBuild_ThreeOptions(t *testing.T) {
	pool := imageItems(3)
	q, err := quiz.NewBuilder(random.New(2), 3).Build(pool[2], quiz.FormulaFromName, pool)
	require.NoError(t, err)
	assert.Len(t, q.Options, 3)
	assert.Equal(t, pool[2].Formula, q.Options[q.CorrectAnswer])
}

func TestParseModality(t *testing.T) {
	m, err := quiz.ParseModality("field_from_name:primary_function")
	require.NoError(t, err)
	assert.Equal(t, quiz.KindFieldFromName, m.Kind)
	assert.Equal(t, "Primary function", m.Label)
	assert.Equal(t, "field_from_name:primary_function", m.String())

	m, err = quiz.ParseModality("image_from_name")
	require.NoError(t, err)
	assert.Equal(t, quiz.ImageFromName, m)

	_, err = quiz.ParseModality("field_from_name:favourite_colour")
	assert.Error(t, err)
	_, err = quiz.ParseModality("sound_from_name")
	assert.Error(t, err)
}
