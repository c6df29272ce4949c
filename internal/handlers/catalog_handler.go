package handlers

import (
	"context"
	"net/http"

	"flashcard-service/internal/constants"
	"flashcard-service/internal/dto"
	"flashcard-service/internal/models"

	"github.com/gin-gonic/gin"
)

type Catalog interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	ListTopics(ctx context.Context, courseID string) ([]*models.Topic, error)
	ListFlashcards(ctx context.Context, topicID string) ([]*models.Flashcard, error)
	CreateCourse(ctx context.Context, name string) (*models.Course, error)
	CreateTopic(ctx context.Context, courseID, name string) (*models.Topic, error)
	AddFlashcard(ctx context.Context, topicID, front, back, partOfSpeech string) (*models.Flashcard, error)
}

type CatalogHandler struct {
	catalog Catalog
}

func NewCatalogHandler(catalog Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.catalog.ListCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CoursesResponse{Courses: nonNil(courses)})
}

func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonErrorCode(c, http.StatusBadRequest, constants.ErrorCodeInvalidInput, "Invalid request body")
		return
	}

	course, err := h.catalog.CreateCourse(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *CatalogHandler) ListTopics(c *gin.Context) {
	topics, err := h.catalog.ListTopics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TopicsResponse{Topics: nonNil(topics)})
}

func (h *CatalogHandler) CreateTopic(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonErrorCode(c, http.StatusBadRequest, constants.ErrorCodeInvalidInput, "Invalid request body")
		return
	}

	topic, err := h.catalog.CreateTopic(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

func (h *CatalogHandler) ListFlashcards(c *gin.Context) {
	cards, err := h.catalog.ListFlashcards(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FlashcardsResponse{Flashcards: nonNil(cards)})
}

func (h *CatalogHandler) CreateFlashcard(c *gin.Context) {
	var req dto.CreateFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonErrorCode(c, http.StatusBadRequest, constants.ErrorCodeInvalidInput, "Invalid request body")
		return
	}

	card, err := h.catalog.AddFlashcard(c.Request.Context(), c.Param("id"), req.Front, req.Back, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
