package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pharmaflash/internal/models"
)

// MockChapterRepository is a mock implementation of repository.ChapterRepository
type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) Insert(ctx context.Context, chapter models.Chapter) (int64, error) {
	args := m.Called(ctx, chapter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChapterRepository) Get(ctx context.Context, id, profileID int64) (*models.Chapter, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) List(ctx context.Context, profileID int64) ([]models.Chapter, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) Rename(ctx context.Context, id, profileID int64, name string) error {
	args := m.Called(ctx, id, profileID, name)
	return args.Error(0)
}

func (m *MockChapterRepository) Delete(ctx context.Context, id, profileID int64) error {
	args := m.Called(ctx, id, profileID)
	return args.Error(0)
}

// MockTopicRepository is a mock implementation of repository.TopicRepository
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) Insert(ctx context.Context, topic models.Topic) (int64, error) {
	args := m.Called(ctx, topic)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTopicRepository) Get(ctx context.Context, id, profileID int64) (*models.Topic, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Topic), args.Error(1)
}

func (m *MockTopicRepository) List(ctx context.Context, profileID, chapterID int64) ([]models.Topic, error) {
	args := m.Called(ctx, profileID, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Topic), args.Error(1)
}

func (m *MockTopicRepository) Rename(ctx context.Context, id, profileID int64, name string) error {
	args := m.Called(ctx, id, profileID, name)
	return args.Error(0)
}

func (m *MockTopicRepository) Delete(ctx context.Context, id, profileID int64) error {
	args := m.Called(ctx, id, profileID)
	return args.Error(0)
}

func (m *MockTopicRepository) SetFlashcardConfig(ctx context.Context, id, profileID int64, cfg *models.FlashcardPromptConfig) error {
	args := m.Called(ctx, id, profileID, cfg)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of repository.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Insert(ctx context.Context, item models.StudyItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Get(ctx context.Context, id, profileID int64) (*models.StudyItem, error) {
	args := m.Called(ctx, id, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudyItem), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context, filter models.ItemFilter) ([]models.StudyItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudyItem), args.Error(1)
}

func (m *MockItemRepository) FillEmpty(ctx context.Context, id, profileID int64, values map[string]string) error {
	args := m.Called(ctx, id, profileID, values)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter models.ItemFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item models.StudyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id, profileID int64) error {
	args := m.Called(ctx, id, profileID)
	return args.Error(0)
}
