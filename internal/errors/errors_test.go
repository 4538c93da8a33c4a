package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/pharmaflash/internal/errors"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := errors.NewInsufficientPoolError("items with images", 4, 3)

	assert.True(t, stderrors.Is(err, errors.ErrInsufficientPool))
	assert.False(t, stderrors.Is(err, errors.ErrInvalidState))

	wrapped := fmt.Errorf("generate: %w", err)
	assert.True(t, stderrors.Is(wrapped, errors.ErrInsufficientPool))
}

func TestAppError_Message(t *testing.T) {
	err := errors.NewInsufficientPoolError("items with images", 4, 3)
	assert.Equal(t, 422, err.Status)
	assert.Equal(t, "INSUFFICIENT_POOL: need at least 4 items with images, have 3", err.Error())

	internal := errors.NewInternalError(stderrors.New("disk full"))
	assert.Equal(t, "INTERNAL_ERROR: internal server error (disk full)", internal.Error())
	assert.EqualError(t, stderrors.Unwrap(internal), "disk full")
}

func TestAppError_Statuses(t *testing.T) {
	assert.Equal(t, 404, errors.NewNotFoundError("item", 7).Status)
	assert.Equal(t, 400, errors.NewValidationError("name", "required").Status)
	assert.Equal(t, 400, errors.NewBadRequestError("bad").Status)
	assert.Equal(t, 401, errors.NewUnauthorizedError("no profile").Status)
	assert.Equal(t, 409, errors.NewInvalidStateError("already answered").Status)
}
