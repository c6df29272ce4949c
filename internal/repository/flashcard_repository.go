package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"flashcard-service/internal/models"
	"flashcard-service/pkg/database"
)

var ErrNotFound = errors.New("not found")

type FlashcardRepository struct {
	db *database.DB
}

func NewFlashcardRepository(db *database.DB) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

func (r *FlashcardRepository) CountCourses(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	return count, err
}

func (r *FlashcardRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (id, name, created_at) VALUES (?, ?, ?)`,
		course.ID, course.Name, course.CreatedAt,
	)
	return err
}

func (r *FlashcardRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM courses
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name, &course.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (r *FlashcardRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM courses WHERE id = ?`, id,
	).Scan(&course.ID, &course.Name, &course.CreatedAt)
	if err != nil {
		return nil, notFound(err, "course", id)
	}
	return course, nil
}

func (r *FlashcardRepository) CreateTopic(ctx context.Context, topic *models.Topic) error {
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO topics (id, course_id, name, created_at) VALUES (?, ?, ?, ?)`,
		topic.ID, topic.CourseID, topic.Name, topic.CreatedAt,
	)
	return err
}

func (r *FlashcardRepository) ListTopics(ctx context.Context, courseID string) ([]*models.Topic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, name, created_at
		FROM topics
		WHERE course_id = ?
		ORDER BY created_at, name
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []*models.Topic
	for rows.Next() {
		topic := &models.Topic{}
		if err := rows.Scan(&topic.ID, &topic.CourseID, &topic.Name, &topic.CreatedAt); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

func (r *FlashcardRepository) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	topic := &models.Topic{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, course_id, name, created_at FROM topics WHERE id = ?`, id,
	).Scan(&topic.ID, &topic.CourseID, &topic.Name, &topic.CreatedAt)
	if err != nil {
		return nil, notFound(err, "topic", id)
	}
	return topic, nil
}

func (r *FlashcardRepository) CreateFlashcard(ctx context.Context, card *models.Flashcard) error {
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flashcards (id, topic_id, front, back, type, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		card.ID, card.TopicID, card.Front, card.Back, card.Type, card.CreatedAt,
	)
	return err
}

func (r *FlashcardRepository) ListFlashcards(ctx context.Context, topicID string) ([]*models.Flashcard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, topic_id, front, back, type, created_at
		FROM flashcards
		WHERE topic_id = ?
		ORDER BY created_at, front
	`, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.Flashcard
	for rows.Next() {
		card := &models.Flashcard{}
		if err := rows.Scan(&card.ID, &card.TopicID, &card.Front, &card.Back, &card.Type, &card.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *FlashcardRepository) GetFlashcard(ctx context.Context, id string) (*models.Flashcard, error) {
	card := &models.Flashcard{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, topic_id, front, back, type, created_at FROM flashcards WHERE id = ?`, id,
	).Scan(&card.ID, &card.TopicID, &card.Front, &card.Back, &card.Type, &card.CreatedAt)
	if err != nil {
		return nil, notFound(err, "flashcard", id)
	}
	return card, nil
}

// NotifyTopicChanged tells other instances that topicID's flashcards changed.
func (r *FlashcardRepository) NotifyTopicChanged(ctx context.Context, channel, topicID string) error {
	return r.db.Notify(ctx, channel, topicID)
}

func (r *FlashcardRepository) SupportsNotify() bool {
	return r.db.Dialect.SupportsNotify()
}

func notFound(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return err
}
