package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"flashcard-service/internal/models"
	"flashcard-service/internal/repository"
	"flashcard-service/pkg/cache"

	"github.com/goccy/go-json"
)

type memoryRepository struct {
	mu      sync.Mutex
	courses map[string]*models.Course
	topics  map[string]*models.Topic
	cards   map[string]*models.Flashcard
	lists   int
	failing bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		courses: make(map[string]*models.Course),
		topics:  make(map[string]*models.Topic),
		cards:   make(map[string]*models.Flashcard),
	}
}

func (r *memoryRepository) CountCourses(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.courses), nil
}

func (r *memoryRepository) CreateCourse(ctx context.Context, c *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = c
	return nil
}

func (r *memoryRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Course
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courses[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("course %s: %w", id, repository.ErrNotFound)
}

func (r *memoryRepository) CreateTopic(ctx context.Context, t *models.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[t.ID] = t
	return nil
}

func (r *memoryRepository) ListTopics(ctx context.Context, courseID string) ([]*models.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Topic
	for _, t := range r.topics {
		if t.CourseID == courseID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, fmt.Errorf("connection refused")
	}
	if t, ok := r.topics[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("topic %s: %w", id, repository.ErrNotFound)
}

func (r *memoryRepository) CreateFlashcard(ctx context.Context, c *models.Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[c.ID] = c
	return nil
}

func (r *memoryRepository) ListFlashcards(ctx context.Context, topicID string) ([]*models.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	var out []*models.Flashcard
	for _, c := range r.cards {
		if c.TopicID == topicID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Front < out[j].Front
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepository) GetFlashcard(ctx context.Context, id string) (*models.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cards[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("flashcard %s: %w", id, repository.ErrNotFound)
}

func (r *memoryRepository) listCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) GetJSON(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
