package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/testutil/mocks"
)

func TestProfileService(t *testing.T) {
	ctx := context.Background()

	t.Run("create trims and upserts", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		repo.On("Upsert", mock.Anything, "ana").Return(&models.Profile{ID: 1, Username: "ana"}, nil)

		p, err := NewProfileService(repo).CreateProfile(ctx, "  ana ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("create rejects empty", func(t *testing.T) {
		_, err := NewProfileService(new(mocks.MockProfileRepository)).CreateProfile(ctx, "")
		assert.Error(t, err)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		repo.On("Get", mock.Anything, int64(4)).Return(nil, nil)
		_, err := NewProfileService(repo).GetProfile(ctx, 4)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("delete missing", func(t *testing.T) {
		repo := new(mocks.MockProfileRepository)
		repo.On("Delete", mock.Anything, int64(4)).Return(sql.ErrNoRows)
		assert.ErrorIs(t, NewProfileService(repo).DeleteProfile(ctx, 4), errors.ErrNotFound)
	})
}
