package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"flashcard-service/internal/constants"
	"flashcard-service/internal/game"
	"flashcard-service/internal/models"
	"flashcard-service/internal/repository"
	"flashcard-service/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrDataLoad is returned when a topic's word set cannot be read.
var ErrDataLoad = errors.New("failed to load flashcards")

var ErrInvalidInput = errors.New("invalid input")

type CatalogRepository interface {
	CountCourses(ctx context.Context) (int, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	CreateTopic(ctx context.Context, topic *models.Topic) error
	ListTopics(ctx context.Context, courseID string) ([]*models.Topic, error)
	GetTopic(ctx context.Context, id string) (*models.Topic, error)
	CreateFlashcard(ctx context.Context, card *models.Flashcard) error
	ListFlashcards(ctx context.Context, topicID string) ([]*models.Flashcard, error)
	GetFlashcard(ctx context.Context, id string) (*models.Flashcard, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// BroadcastFunc announces a topic change to every instance, this one
// included. Without one, changes are only seen locally.
type BroadcastFunc func(ctx context.Context, topicID string) error

type CatalogService struct {
	repo      CatalogRepository
	cache     Cache
	broadcast BroadcastFunc

	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewCatalogService(repo CatalogRepository, c Cache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
		subs:  make(map[string]map[chan struct{}]struct{}),
	}
}

func (s *CatalogService) SetBroadcaster(b BroadcastFunc) {
	s.broadcast = b
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.repo.ListCourses(ctx)
}

func (s *CatalogService) ListTopics(ctx context.Context, courseID string) ([]*models.Topic, error) {
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.ListTopics(ctx, courseID)
}

func (s *CatalogService) GetTopic(ctx context.Context, topicID string) (*models.Topic, error) {
	return s.repo.GetTopic(ctx, topicID)
}

func (s *CatalogService) ListFlashcards(ctx context.Context, topicID string) ([]*models.Flashcard, error) {
	if _, err := s.repo.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}
	return s.repo.ListFlashcards(ctx, topicID)
}

func (s *CatalogService) CreateCourse(ctx context.Context, name string) (*models.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: course name is required", ErrInvalidInput)
	}
	course := &models.Course{ID: uuid.NewString(), Name: name}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) CreateTopic(ctx context.Context, courseID, name string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: topic name is required", ErrInvalidInput)
	}
	if _, err := s.repo.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	topic := &models.Topic{ID: uuid.NewString(), CourseID: courseID, Name: name}
	if err := s.repo.CreateTopic(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// AddFlashcard stores a card and notifies the topic's subscribers.
func (s *CatalogService) AddFlashcard(ctx context.Context, topicID, front, back, partOfSpeech string) (*models.Flashcard, error) {
	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" || back == "" {
		return nil, fmt.Errorf("%w: front and back are required", ErrInvalidInput)
	}
	if _, err := s.repo.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}

	card := &models.Flashcard{
		ID:      uuid.NewString(),
		TopicID: topicID,
		Front:   front,
		Back:    back,
		Type:    strings.TrimSpace(partOfSpeech),
	}
	if err := s.repo.CreateFlashcard(ctx, card); err != nil {
		return nil, err
	}

	if s.broadcast != nil {
		if err := s.broadcast(ctx, topicID); err != nil {
			log.Warn().Err(err).Str("topic_id", topicID).Msg("Failed to broadcast topic change")
			s.TopicChanged(topicID)
		}
	} else {
		s.TopicChanged(topicID)
	}
	return card, nil
}

// FetchAll returns the word set of a topic.
func (s *CatalogService) FetchAll(ctx context.Context, topicID string) ([]game.VocabularyItem, error) {
	key := fmt.Sprintf(constants.CacheKeyTopicFlashcards, topicID)
	if s.cache != nil {
		var items []game.VocabularyItem
		err := s.cache.GetJSON(ctx, key, &items)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("topic_id", topicID).Msg("Failed to read cached flashcards")
		}
	}

	cards, err := s.ListFlashcards(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}

	items := make([]game.VocabularyItem, len(cards))
	for i, card := range cards {
		items[i] = game.VocabularyItem{ID: card.ID, Front: card.Front, Back: card.Back, Type: card.Type}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, items); err != nil {
			log.Warn().Err(err).Str("topic_id", topicID).Msg("Failed to cache flashcards")
		}
	}
	return items, nil
}

// TopicChanged invalidates the cached word set of topicID and wakes its
// subscribers. An empty topicID means any topic may have changed.
func (s *CatalogService) TopicChanged(topicID string) {
	s.mu.Lock()
	var targets []chan struct{}
	var keys []string
	for id, subs := range s.subs {
		if topicID != "" && id != topicID {
			continue
		}
		keys = append(keys, fmt.Sprintf(constants.CacheKeyTopicFlashcards, id))
		for ch := range subs {
			targets = append(targets, ch)
		}
	}
	s.mu.Unlock()

	if topicID != "" && len(keys) == 0 {
		keys = append(keys, fmt.Sprintf(constants.CacheKeyTopicFlashcards, topicID))
	}
	if s.cache != nil && len(keys) > 0 {
		if err := s.cache.Delete(context.Background(), keys...); err != nil {
			log.Warn().Err(err).Str("topic_id", topicID).Msg("Failed to invalidate cached flashcards")
		}
	}

	for _, ch := range targets {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe streams the word set of topicID: once right away and again after
// every change. Both channels close when ctx is done.
func (s *CatalogService) Subscribe(ctx context.Context, topicID string) (<-chan []game.VocabularyItem, <-chan error) {
	updates := make(chan []game.VocabularyItem, 1)
	errs := make(chan error, 1)
	wake := make(chan struct{}, 1)
	wake <- struct{}{}

	s.mu.Lock()
	if s.subs[topicID] == nil {
		s.subs[topicID] = make(map[chan struct{}]struct{})
	}
	s.subs[topicID][wake] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.subs[topicID], wake)
			if len(s.subs[topicID]) == 0 {
				delete(s.subs, topicID)
			}
			s.mu.Unlock()
			close(updates)
			close(errs)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case <-wake:
			}

			items, err := s.FetchAll(ctx, topicID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case updates <- items:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, errs
}

// IsNotFound reports whether err means the course, topic or card is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
