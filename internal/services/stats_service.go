package services

import (
	"context"
	"time"

	"github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/repository"
)

// StatsService handles study statistics
type StatsService interface {
	GetStats(ctx context.Context, profileID int64) (*models.StudyStats, error)
}

type statsService struct {
	reviewRepo repository.ReviewRepository
	now        func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(reviewRepo repository.ReviewRepository) StatsService {
	return &statsService{reviewRepo: reviewRepo, now: time.Now}
}

func (s *statsService) GetStats(ctx context.Context, profileID int64) (*models.StudyStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats: profile_id=%d", profileID)

	stats, err := s.reviewRepo.Stats(ctx, profileID, s.now())
	if err != nil {
		log.Error("failed to get stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
