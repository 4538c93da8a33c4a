package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vytor/pharmaflash/internal/errors"
	"github.com/vytor/pharmaflash/internal/jobs"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/pubchem"
	"github.com/vytor/pharmaflash/internal/repository"
)

// CatalogService manages the chapter > topic > item tree of a profile.
type CatalogService interface {
	CreateChapter(ctx context.Context, profileID int64, name string) (*models.Chapter, error)
	ListChapters(ctx context.Context, profileID int64) ([]models.Chapter, error)
	GetChapter(ctx context.Context, profileID, id int64) (*models.Chapter, error)
	RenameChapter(ctx context.Context, profileID, id int64, name string) error
	DeleteChapter(ctx context.Context, profileID, id int64) error

	CreateTopic(ctx context.Context, profileID, chapterID int64, name string) (*models.Topic, error)
	RenameTopic(ctx context.Context, profileID, id int64, name string) error
	DeleteTopic(ctx context.Context, profileID, id int64) error
	GetFlashcardConfig(ctx context.Context, profileID, topicID int64) (*models.FlashcardPromptConfig, error)
	SetFlashcardConfig(ctx context.Context, profileID, topicID int64, cfg *models.FlashcardPromptConfig) error

	CreateItem(ctx context.Context, profileID int64, item models.StudyItem) (*models.StudyItem, error)
	GetItem(ctx context.Context, profileID, id int64) (*models.StudyItem, error)
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.StudyItem, int, error)
	UpdateItem(ctx context.Context, profileID int64, item models.StudyItem) (*models.StudyItem, error)
	DeleteItem(ctx context.Context, profileID, id int64) error

	// Snapshot loads chapters, topics and items fresh from storage. A zero
	// chapterID loads every chapter of the profile.
	Snapshot(ctx context.Context, profileID, chapterID int64) ([]models.Chapter, error)

	LookupCompound(ctx context.Context, name string) (*pubchem.Compound, error)
	EnqueueAutofill(ctx context.Context, profileID, itemID int64) error
	AutofillItem(ctx context.Context, profileID, itemID int64) error
}

type catalogService struct {
	chapterRepo repository.ChapterRepository
	topicRepo   repository.TopicRepository
	itemRepo    repository.ItemRepository
	pubchem     pubchem.ClientInterface
	jobQueue    jobs.JobQueue
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	chapterRepo repository.ChapterRepository,
	topicRepo repository.TopicRepository,
	itemRepo repository.ItemRepository,
	pubchemClient pubchem.ClientInterface,
	jobQueue jobs.JobQueue,
) CatalogService {
	return &catalogService{
		chapterRepo: chapterRepo,
		topicRepo:   topicRepo,
		itemRepo:    itemRepo,
		pubchem:     pubchemClient,
		jobQueue:    jobQueue,
	}
}

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.NewValidationError(field, "cannot be empty")
	}
	return name, nil
}

func (s *catalogService) CreateChapter(ctx context.Context, profileID int64, name string) (*models.Chapter, error) {
	log := logger.FromContext(ctx)
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}
	log.Debug("creating chapter: profile_id=%d, name=%s", profileID, name)

	id, err := s.chapterRepo.Insert(ctx, models.Chapter{ProfileID: profileID, Name: name})
	if err != nil {
		log.Error("failed to create chapter: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.loadChapter(ctx, profileID, id)
}

func (s *catalogService) loadChapter(ctx context.Context, profileID, id int64) (*models.Chapter, error) {
	c, err := s.chapterRepo.Get(ctx, id, profileID)
	if err != nil {
		return nil, translate(ctx, err, "chapter", id)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("chapter", id)
	}
	return c, nil
}

// ListChapters returns the profile's chapters with their topics, without items.
func (s *catalogService) ListChapters(ctx context.Context, profileID int64) ([]models.Chapter, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing chapters: profile_id=%d", profileID)

	chapters, err := s.chapterRepo.List(ctx, profileID)
	if err != nil {
		log.Error("failed to list chapters: %v", err)
		return nil, errors.NewInternalError(err)
	}
	topics, err := s.topicRepo.List(ctx, profileID, 0)
	if err != nil {
		log.Error("failed to list topics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return attachTopics(chapters, topics), nil
}

func (s *catalogService) GetChapter(ctx context.Context, profileID, id int64) (*models.Chapter, error) {
	chapters, err := s.Snapshot(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	return &chapters[0], nil
}

func (s *catalogService) RenameChapter(ctx context.Context, profileID, id int64, name string) error {
	name, err := requireName("name", name)
	if err != nil {
		return err
	}
	if err := s.chapterRepo.Rename(ctx, id, profileID, name); err != nil {
		return translate(ctx, err, "chapter", id)
	}
	return nil
}

func (s *catalogService) DeleteChapter(ctx context.Context, profileID, id int64) error {
	logger.FromContext(ctx).Debug("deleting chapter: id=%d", id)
	if err := s.chapterRepo.Delete(ctx, id, profileID); err != nil {
		return translate(ctx, err, "chapter", id)
	}
	return nil
}

func (s *catalogService) CreateTopic(ctx context.Context, profileID, chapterID int64, name string) (*models.Topic, error) {
	log := logger.FromContext(ctx)
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadChapter(ctx, profileID, chapterID); err != nil {
		return nil, err
	}
	log.Debug("creating topic: chapter_id=%d, name=%s", chapterID, name)

	id, err := s.topicRepo.Insert(ctx, models.Topic{ChapterID: chapterID, Name: name})
	if err != nil {
		log.Error("failed to create topic: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.loadTopic(ctx, profileID, id)
}

func (s *catalogService) loadTopic(ctx context.Context, profileID, id int64) (*models.Topic, error) {
	t, err := s.topicRepo.Get(ctx, id, profileID)
	if err != nil {
		return nil, translate(ctx, err, "topic", id)
	}
	if t == nil {
		return nil, errors.NewNotFoundError("topic", id)
	}
	return t, nil
}

func (s *catalogService) RenameTopic(ctx context.Context, profileID, id int64, name string) error {
	name, err := requireName("name", name)
	if err != nil {
		return err
	}
	if err := s.topicRepo.Rename(ctx, id, profileID, name); err != nil {
		return translate(ctx, err, "topic", id)
	}
	return nil
}

func (s *catalogService) DeleteTopic(ctx context.Context, profileID, id int64) error {
	logger.FromContext(ctx).Debug("deleting topic: id=%d", id)
	if err := s.topicRepo.Delete(ctx, id, profileID); err != nil {
		return translate(ctx, err, "topic", id)
	}
	return nil
}

// GetFlashcardConfig returns the topic's configuration, or an empty one when
// the topic uses the default prompt.
func (s *catalogService) GetFlashcardConfig(ctx context.Context, profileID, topicID int64) (*models.FlashcardPromptConfig, error) {
	t, err := s.loadTopic(ctx, profileID, topicID)
	if err != nil {
		return nil, err
	}
	if t.FlashcardConfig == nil {
		return &models.FlashcardPromptConfig{QuestionTypes: []models.FlashcardQuestionType{}}, nil
	}
	return t.FlashcardConfig, nil
}

func (s *catalogService) SetFlashcardConfig(ctx context.Context, profileID, topicID int64, cfg *models.FlashcardPromptConfig) error {
	if err := ValidateFlashcardConfig(cfg); err != nil {
		return err
	}
	if err := s.topicRepo.SetFlashcardConfig(ctx, topicID, profileID, cfg); err != nil {
		return translate(ctx, err, "topic", topicID)
	}
	return nil
}

// ValidateFlashcardConfig rejects unknown prompt types and name_to_field
// entries that do not name a designated field. A nil config is valid.
func ValidateFlashcardConfig(cfg *models.FlashcardPromptConfig) error {
	if cfg == nil {
		return nil
	}
	for i, qt := range cfg.QuestionTypes {
		field := fmt.Sprintf("question_types[%d]", i)
		switch qt.Type {
		case models.PromptImageToName:
		case models.PromptNameToField:
			if !models.IsKnownField(qt.Field) {
				return errors.NewValidationError(field+".field", fmt.Sprintf("unknown field %q", qt.Field))
			}
		default:
			return errors.NewValidationError(field+".type", fmt.Sprintf("unknown prompt type %q", qt.Type))
		}
	}
	return nil
}

func (s *catalogService) CreateItem(ctx context.Context, profileID int64, item models.StudyItem) (*models.StudyItem, error) {
	log := logger.FromContext(ctx)
	name, err := requireName("name", item.Name)
	if err != nil {
		return nil, err
	}
	item.Name = name
	if _, err := s.loadTopic(ctx, profileID, item.TopicID); err != nil {
		return nil, err
	}
	log.Debug("creating item: topic_id=%d, name=%s", item.TopicID, item.Name)

	id, err := s.itemRepo.Insert(ctx, item)
	if err != nil {
		log.Error("failed to create item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.GetItem(ctx, profileID, id)
}

func (s *catalogService) GetItem(ctx context.Context, profileID, id int64) (*models.StudyItem, error) {
	it, err := s.itemRepo.Get(ctx, id, profileID)
	if err != nil {
		return nil, translate(ctx, err, "item", id)
	}
	if it == nil {
		return nil, errors.NewNotFoundError("item", id)
	}
	return it, nil
}

// ListItems returns one page of items and the total matching the filter.
func (s *catalogService) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.StudyItem, int, error) {
	log := logger.FromContext(ctx)
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, 0, errors.NewValidationError("limit", "must not be negative")
	}

	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count items: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	if items == nil {
		items = []models.StudyItem{}
	}
	return items, total, nil
}

func (s *catalogService) UpdateItem(ctx context.Context, profileID int64, item models.StudyItem) (*models.StudyItem, error) {
	name, err := requireName("name", item.Name)
	if err != nil {
		return nil, err
	}
	item.Name = name

	existing, err := s.GetItem(ctx, profileID, item.ID)
	if err != nil {
		return nil, err
	}
	if item.TopicID == 0 {
		item.TopicID = existing.TopicID
	}
	if item.TopicID != existing.TopicID {
		if _, err := s.loadTopic(ctx, profileID, item.TopicID); err != nil {
			return nil, err
		}
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, translate(ctx, err, "item", item.ID)
	}
	return s.GetItem(ctx, profileID, item.ID)
}

func (s *catalogService) DeleteItem(ctx context.Context, profileID, id int64) error {
	logger.FromContext(ctx).Debug("deleting item: id=%d", id)
	if err := s.itemRepo.Delete(ctx, id, profileID); err != nil {
		return translate(ctx, err, "item", id)
	}
	return nil
}

func (s *catalogService) Snapshot(ctx context.Context, profileID, chapterID int64) ([]models.Chapter, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading snapshot: profile_id=%d, chapter_id=%d", profileID, chapterID)

	var chapters []models.Chapter
	if chapterID != 0 {
		c, err := s.loadChapter(ctx, profileID, chapterID)
		if err != nil {
			return nil, err
		}
		chapters = []models.Chapter{*c}
	} else {
		var err error
		chapters, err = s.chapterRepo.List(ctx, profileID)
		if err != nil {
			log.Error("failed to list chapters: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	topics, err := s.topicRepo.List(ctx, profileID, chapterID)
	if err != nil {
		log.Error("failed to list topics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	items, err := s.itemRepo.List(ctx, models.ItemFilter{ProfileID: profileID, ChapterID: chapterID})
	if err != nil {
		log.Error("failed to list items: %v", err)
		return nil, errors.NewInternalError(err)
	}

	byTopic := make(map[int64][]models.StudyItem)
	for _, it := range items {
		byTopic[it.TopicID] = append(byTopic[it.TopicID], it)
	}
	for i := range topics {
		topics[i].Items = byTopic[topics[i].ID]
	}
	chapters = attachTopics(chapters, topics)
	log.Debug("snapshot loaded: chapters=%d, topics=%d, items=%d", len(chapters), len(topics), len(items))
	return chapters, nil
}

func attachTopics(chapters []models.Chapter, topics []models.Topic) []models.Chapter {
	byChapter := make(map[int64][]models.Topic)
	for _, t := range topics {
		byChapter[t.ChapterID] = append(byChapter[t.ChapterID], t)
	}
	for i := range chapters {
		chapters[i].Topics = byChapter[chapters[i].ID]
	}
	return chapters
}

func (s *catalogService) LookupCompound(ctx context.Context, name string) (*pubchem.Compound, error) {
	log := logger.FromContext(ctx)
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}

	c, err := s.pubchem.Lookup(ctx, name)
	if stderrors.Is(err, pubchem.ErrNotFound) {
		return nil, errors.NewNotFoundError("compound", name)
	}
	if err != nil {
		log.Error("pubchem lookup failed: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return c, nil
}

func (s *catalogService) EnqueueAutofill(ctx context.Context, profileID, itemID int64) error {
	log := logger.FromContext(ctx)
	if _, err := s.GetItem(ctx, profileID, itemID); err != nil {
		return err
	}
	if err := s.jobQueue.EnqueueAutofill(profileID, itemID); err != nil {
		log.Error("failed to enqueue autofill for item %d: %v", itemID, err)
		return errors.NewInternalError(err)
	}
	log.Info("autofill enqueued: item_id=%d", itemID)
	return nil
}

// AutofillItem fills the item's empty metadata fields from PubChem. A lookup
// miss is logged and is not an error.
func (s *catalogService) AutofillItem(ctx context.Context, profileID, itemID int64) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{"item_id": itemID, "profile_id": profileID})

	item, err := s.itemRepo.Get(ctx, itemID, profileID)
	if err != nil {
		return err
	}
	if item == nil {
		log.Warn("item vanished before autofill")
		return nil
	}

	c, err := s.pubchem.Lookup(ctx, item.Name)
	if stderrors.Is(err, pubchem.ErrNotFound) {
		log.Info("no pubchem match for %q", item.Name)
		return nil
	}
	if err != nil {
		return err
	}

	set := pubchem.Fill(item, c)
	if len(set) == 0 {
		log.Debug("nothing to fill")
		return nil
	}
	err = s.itemRepo.FillEmpty(ctx, itemID, profileID, set)
	if stderrors.Is(err, sql.ErrNoRows) {
		log.Warn("item vanished during autofill")
		return nil
	}
	if err != nil {
		return err
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	log.Info("autofilled fields: %s", strings.Join(names, ","))
	return nil
}
