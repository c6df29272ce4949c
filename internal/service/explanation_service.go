package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"flashcard-service/internal/constants"
	"flashcard-service/internal/markup"
	"flashcard-service/internal/models"
	"flashcard-service/pkg/cache"

	"github.com/rs/zerolog/log"
)

var (
	// ErrExplanation covers every failure to produce an explanation.
	ErrExplanation     = errors.New("could not generate an explanation")
	ErrExplanationBusy = errors.New("an explanation for this card is already being generated")
)

type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type FlashcardGetter interface {
	GetFlashcard(ctx context.Context, id string) (*models.Flashcard, error)
}

type Explanation struct {
	FlashcardID string `json:"flashcard_id"`
	Term        string `json:"term"`
	Text        string `json:"text"`
	HTML        string `json:"html"`
}

type ExplanationService struct {
	cards     FlashcardGetter
	generator TextGenerator
	cache     Cache

	mu   sync.Mutex
	busy map[string]bool
}

func NewExplanationService(cards FlashcardGetter, generator TextGenerator, c Cache) *ExplanationService {
	return &ExplanationService{
		cards:     cards,
		generator: generator,
		cache:     c,
		busy:      make(map[string]bool),
	}
}

// BuildPrompt asks for a short Vietnamese explanation of an English term,
// formatted with the markup subset understood by markup.Render.
func BuildPrompt(term string) string {
	return fmt.Sprintf(
		"Giải thích chi tiết và **tóm tắt ngắn gọn** (tối đa 100 từ) từ/cụm từ tiếng Anh sau: %q. "+
			"Bao gồm định nghĩa, ví dụ sử dụng, và các thông tin ngữ cảnh liên quan (nếu có). "+
			"Vui lòng sử dụng định dạng Markdown cho văn bản: **in đậm**, *in nghiêng*, __gạch chân__. "+
			"Trả lời bằng tiếng Việt.",
		term,
	)
}

// Explain returns the explanation of a flashcard's front term. Only one
// request per card may be in flight; no retries are made.
func (s *ExplanationService) Explain(ctx context.Context, flashcardID string) (*Explanation, error) {
	card, err := s.cards.GetFlashcard(ctx, flashcardID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(constants.CacheKeyExplanation, card.ID)
	if s.cache != nil {
		var cached Explanation
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("flashcard_id", card.ID).Msg("Failed to read cached explanation")
		}
	}

	if !s.acquire(card.ID) {
		return nil, ErrExplanationBusy
	}
	defer s.release(card.ID)

	text, err := s.generator.GenerateContent(ctx, BuildPrompt(card.Front))
	if err != nil {
		log.Error().Err(err).Str("flashcard_id", card.ID).Msg("Failed to generate explanation")
		return nil, fmt.Errorf("%w: %w", ErrExplanation, err)
	}

	explanation := &Explanation{
		FlashcardID: card.ID,
		Term:        card.Front,
		Text:        text,
		HTML:        markup.Render(text),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, explanation); err != nil {
			log.Warn().Err(err).Str("flashcard_id", card.ID).Msg("Failed to cache explanation")
		}
	}
	return explanation, nil
}

func (s *ExplanationService) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[id] {
		return false
	}
	s.busy[id] = true
	return true
}

func (s *ExplanationService) release(id string) {
	s.mu.Lock()
	delete(s.busy, id)
	s.mu.Unlock()
}
