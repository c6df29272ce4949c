package service

import (
	"context"
	"fmt"
	"time"

	"flashcard-service/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type seedTopic struct {
	name  string
	cards [][2]string
}

type seedCourse struct {
	name   string
	topics []seedTopic
}

var sampleCatalog = []seedCourse{
	{
		name: "Môi trường",
		topics: []seedTopic{{
			name: "Ô nhiễm môi trường",
			cards: [][2]string{
				{"Environmental pollution", "Ô nhiễm môi trường"},
				{"Air pollution", "Ô nhiễm không khí"},
				{"Water pollution", "Ô nhiễm nước"},
				{"Soil contamination", "Ô nhiễm đất"},
				{"Deforestation", "Phá rừng"},
				{"Greenhouse gases", "Khí nhà kính"},
			},
		}},
	},
	{
		name: "Công nghệ",
		topics: []seedTopic{
			{
				name: "Trí tuệ nhân tạo (AI)",
				cards: [][2]string{
					{"Artificial Intelligence", "Trí tuệ nhân tạo"},
					{"Machine Learning", "Học máy"},
				},
			},
			{
				name: "Blockchain",
				cards: [][2]string{
					{"Blockchain", "Công nghệ chuỗi khối"},
					{"Cryptocurrency", "Tiền điện tử"},
				},
			},
		},
	},
}

const samplePartOfSpeech = "n."

// SeedSampleData fills an empty catalog with the sample courses. It does
// nothing once any course exists.
func SeedSampleData(ctx context.Context, repo CatalogRepository) (bool, error) {
	count, err := repo.CountCourses(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	// Increasing timestamps keep listing order equal to insertion order.
	at := time.Now().UTC()
	next := func() time.Time {
		at = at.Add(time.Second)
		return at
	}

	for _, c := range sampleCatalog {
		course := &models.Course{ID: uuid.NewString(), Name: c.name, CreatedAt: next()}
		if err := repo.CreateCourse(ctx, course); err != nil {
			return false, fmt.Errorf("failed to seed course %q: %w", c.name, err)
		}
		for _, t := range c.topics {
			topic := &models.Topic{ID: uuid.NewString(), CourseID: course.ID, Name: t.name, CreatedAt: next()}
			if err := repo.CreateTopic(ctx, topic); err != nil {
				return false, fmt.Errorf("failed to seed topic %q: %w", t.name, err)
			}
			for _, pair := range t.cards {
				card := &models.Flashcard{
					ID:        uuid.NewString(),
					TopicID:   topic.ID,
					Front:     pair[0],
					Back:      pair[1],
					Type:      samplePartOfSpeech,
					CreatedAt: next(),
				}
				if err := repo.CreateFlashcard(ctx, card); err != nil {
					return false, fmt.Errorf("failed to seed flashcard %q: %w", pair[0], err)
				}
			}
		}
		log.Info().Str("course", c.name).Int("topics", len(c.topics)).Msg("Seeded sample course")
	}
	return true, nil
}
