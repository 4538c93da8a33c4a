package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/testutil/mocks"
)

func TestStatsService(t *testing.T) {
	now := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	repo := new(mocks.MockReviewRepository)
	repo.On("Stats", mock.Anything, int64(1), now).Return(&models.StudyStats{TotalItems: 3}, nil)
	repo.On("Stats", mock.Anything, int64(2), now).Return(nil, stderrors.New("locked"))

	svc := &statsService{reviewRepo: repo, now: func() time.Time { return now }}

	stats, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalItems)

	_, err = svc.GetStats(context.Background(), 2)
	assert.Error(t, err)
}
