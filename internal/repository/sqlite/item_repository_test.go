package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/pharmaflash/internal/flashcard"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/repository"
	"github.com/vytor/pharmaflash/internal/repository/sqlite"
	"github.com/vytor/pharmaflash/internal/testutil"
)

type ItemRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	items   repository.ItemRepository
	reviews repository.ReviewRepository
	fx      testutil.Fixture
}

func (s *ItemRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.items = sqlite.NewItemRepository(s.db)
	s.reviews = sqlite.NewReviewRepository(s.db)
	s.fx = testutil.SeedTopic(s.T(), s.db, "student")
}

func (s *ItemRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ItemRepositorySuite) TestInsertGetUpdate() {
	ctx := context.Background()

	id, err := s.items.Insert(ctx, models.StudyItem{
		TopicID:         s.fx.TopicID,
		Name:            "Morphine",
		Formula:         "C17H19NO3",
		DrugClass:       "Opioid",
		UseInFlashcards: true,
	})
	s.Require().NoError(err)

	got, err := s.items.Get(ctx, id, s.fx.ProfileID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Morphine", got.Name)
	s.Equal("Opioid", got.DrugClass)
	s.True(got.UseInFlashcards)
	s.False(got.CreatedAt.IsZero())

	got.ImageURL = "https://img/morphine.png"
	got.UseInFlashcards = false
	s.Require().NoError(s.items.Update(ctx, *got))

	updated, err := s.items.Get(ctx, id, s.fx.ProfileID)
	s.Require().NoError(err)
	s.True(updated.HasImage())
	s.False(updated.UseInFlashcards)

	hidden, err := s.items.Get(ctx, id, s.fx.ProfileID+1)
	s.Require().NoError(err)
	s.Nil(hidden)
}

func (s *ItemRepositorySuite) TestListFilters() {
	ctx := context.Background()
	testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Aspirin", ImageURL: "a.png"})
	testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Ibuprofen"})
	testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Paracetamol", ImageURL: "p.png"})

	all, err := s.items.List(ctx, models.ItemFilter{ProfileID: s.fx.ProfileID})
	s.Require().NoError(err)
	s.Len(all, 3)

	withImages, err := s.items.List(ctx, models.ItemFilter{ProfileID: s.fx.ProfileID, HasImage: true})
	s.Require().NoError(err)
	s.Len(withImages, 2)

	search, err := s.items.List(ctx, models.ItemFilter{ProfileID: s.fx.ProfileID, Search: "PROF"})
	s.Require().NoError(err)
	s.Require().Len(search, 1)
	s.Equal("Ibuprofen", search[0].Name)

	page, err := s.items.List(ctx, models.ItemFilter{ProfileID: s.fx.ProfileID, Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("Ibuprofen", page[0].Name)

	n, err := s.items.Count(ctx, models.ItemFilter{ProfileID: s.fx.ProfileID, Limit: 1})
	s.Require().NoError(err)
	s.Equal(3, n)

	none, err := s.items.List(ctx, models.ItemFilter{ProfileID: s.fx.ProfileID + 1})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *ItemRepositorySuite) TestDeleteScopedToProfile() {
	ctx := context.Background()
	id := testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Codeine"})

	s.ErrorIs(s.items.Delete(ctx, id, s.fx.ProfileID+1), sql.ErrNoRows)
	s.Require().NoError(s.items.Delete(ctx, id, s.fx.ProfileID))
	s.ErrorIs(s.items.Delete(ctx, id, s.fx.ProfileID), sql.ErrNoRows)
}

func (s *ItemRepositorySuite) TestFillEmptyKeepsNonBlankColumns() {
	ctx := context.Background()
	id := testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Aspirin", Formula: "user formula"})

	err := s.items.FillEmpty(ctx, id, s.fx.ProfileID, map[string]string{
		"formula":     "C9H8O4",
		"smiles":      "CC(=O)OC1=CC=CC=C1C(=O)O",
		"pubchem_cid": "2244",
	})
	s.Require().NoError(err)

	got, err := s.items.Get(ctx, id, s.fx.ProfileID)
	s.Require().NoError(err)
	s.Equal("user formula", got.Formula)
	s.Equal("CC(=O)OC1=CC=CC=C1C(=O)O", got.Smiles)
	s.Equal("2244", got.PubChemCID)
	s.Equal("Aspirin", got.Name)
}

func (s *ItemRepositorySuite) TestFillEmptyRejectsUnknownColumnAndForeignProfile() {
	ctx := context.Background()
	id := testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Aspirin"})

	s.Error(s.items.FillEmpty(ctx, id, s.fx.ProfileID, map[string]string{"name": "x"}))
	s.ErrorIs(s.items.FillEmpty(ctx, id, s.fx.ProfileID+1, map[string]string{"smiles": "CC"}), sql.ErrNoRows)
	s.NoError(s.items.FillEmpty(ctx, id, s.fx.ProfileID, nil))

	got, err := s.items.Get(ctx, id, s.fx.ProfileID)
	s.Require().NoError(err)
	s.Empty(got.Smiles)
}

func (s *ItemRepositorySuite) TestRecordSessionAndStats() {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Aspirin", ImageURL: "a.png", UseInFlashcards: true})
	b := testutil.SeedItem(s.T(), s.db, s.fx.TopicID, models.StudyItem{Name: "Ibuprofen", UseInFlashcards: true})

	pa := flashcard.NewProgress(s.fx.ProfileID, a, now)
	pa.Streak = 2
	pa = flashcard.ApplyOutcome(pa, true, now)
	pb := flashcard.ApplyOutcome(flashcard.NewProgress(s.fx.ProfileID, b, now), false, now)

	reviews := []models.Review{
		{ProfileID: s.fx.ProfileID, ItemID: a, PromptType: models.PromptImageToName, Correct: true, ReviewedAt: now},
		{ProfileID: s.fx.ProfileID, ItemID: b, PromptType: models.PromptNameToField, Field: models.FieldFormula, Correct: false, ReviewedAt: now},
	}
	s.Require().NoError(s.reviews.RecordSession(ctx, reviews, []models.ItemProgress{pa, pb}))

	progress, err := s.reviews.Progress(ctx, s.fx.ProfileID, []int64{a, b})
	s.Require().NoError(err)
	s.Require().Len(progress, 2)
	s.Equal(3, progress[a].Streak)
	s.False(progress[b].LastCorrect)

	stats, err := s.reviews.Stats(ctx, s.fx.ProfileID, now.Add(48*time.Hour))
	s.Require().NoError(err)
	s.Equal(2, stats.TotalItems)
	s.Equal(1, stats.ItemsWithImages)
	s.Equal(2, stats.FlashcardEligible)
	s.Equal(2, stats.TotalReviews)
	s.Equal(1, stats.CorrectReviews)
	s.InDelta(0.5, stats.Accuracy, 1e-9)
	s.Equal(1, stats.ItemsMastered)
	s.Equal(1, stats.ItemsNeedReview)
	s.Equal(2, stats.ItemsDue)

	// Upsert replaces the stored row.
	pb = flashcard.ApplyOutcome(pb, true, now)
	s.Require().NoError(s.reviews.RecordSession(ctx, nil, []models.ItemProgress{pb}))
	progress, err = s.reviews.Progress(ctx, s.fx.ProfileID, []int64{b})
	s.Require().NoError(err)
	s.True(progress[b].LastCorrect)
	s.Equal(2, progress[b].TimesReviewed)
}

func (s *ItemRepositorySuite) TestStatsEmptyProfile() {
	stats, err := s.reviews.Stats(context.Background(), s.fx.ProfileID, time.Now())
	s.Require().NoError(err)
	s.Zero(stats.TotalItems)
	s.Zero(stats.Accuracy)
}

func TestItemRepositorySuite(t *testing.T) {
	suite.Run(t, new(ItemRepositorySuite))
}
