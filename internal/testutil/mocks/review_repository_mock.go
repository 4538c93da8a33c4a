package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pharmaflash/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Progress(ctx context.Context, profileID int64, itemIDs []int64) (map[int64]models.ItemProgress, error) {
	args := m.Called(ctx, profileID, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]models.ItemProgress), args.Error(1)
}

func (m *MockReviewRepository) RecordSession(ctx context.Context, reviews []models.Review, progress []models.ItemProgress) error {
	args := m.Called(ctx, reviews, progress)
	return args.Error(0)
}

func (m *MockReviewRepository) Stats(ctx context.Context, profileID int64, now time.Time) (*models.StudyStats, error) {
	args := m.Called(ctx, profileID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyStats), args.Error(1)
}
