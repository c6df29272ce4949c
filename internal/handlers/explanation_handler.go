package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/dto"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

type Explainer interface {
	Explain(ctx context.Context, flashcardID string) (*service.Explanation, error)
}

type ExplanationHandler struct {
	explainer Explainer
}

func NewExplanationHandler(explainer Explainer) *ExplanationHandler {
	return &ExplanationHandler{explainer: explainer}
}

// Explain generates (or returns the cached) explanation of a flashcard's term.
// A request for a card that already has one in flight gets 409.
func (h *ExplanationHandler) Explain(c *gin.Context) {
	explanation, err := h.explainer.Explain(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExplanationResponse{
		FlashcardID: explanation.FlashcardID,
		Term:        explanation.Term,
		Text:        explanation.Text,
		HTML:        explanation.HTML,
	})
}
