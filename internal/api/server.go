package api

import (
	"context"

	"github.com/vytor/pharmaflash/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	ProfileService   services.ProfileService
	CatalogService   services.CatalogService
	QuizService      services.QuizService
	FlashcardService services.FlashcardService
	StatsService     services.StatsService
	DB               Pinger
	AllowedOrigins   []string
}
