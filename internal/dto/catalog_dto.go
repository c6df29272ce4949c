package dto

import "flashcard-service/internal/models"

type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type CreateTopicRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

type CreateFlashcardRequest struct {
	Front string `json:"front" binding:"required,max=500"`
	Back  string `json:"back" binding:"required,max=500"`
	Type  string `json:"type" binding:"max=32"`
}

type CoursesResponse struct {
	Courses []*models.Course `json:"courses"`
}

type TopicsResponse struct {
	Topics []*models.Topic `json:"topics"`
}

type FlashcardsResponse struct {
	Flashcards []*models.Flashcard `json:"flashcards"`
}

type ExplanationResponse struct {
	FlashcardID string `json:"flashcard_id"`
	Term        string `json:"term"`
	Text        string `json:"text"`
	HTML        string `json:"html"`
}
