package handlers

import (
	"errors"
	"net/http"

	"flashcard-service/internal/constants"
	"flashcard-service/internal/dto"
	"flashcard-service/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses. Unknown errors are
// left to the ErrorHandler middleware.
func respondError(c *gin.Context, err error) {
	switch {
	case service.IsNotFound(err):
		dto.JsonErrorCode(c, http.StatusNotFound, constants.ErrorCodeNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		dto.JsonErrorCode(c, http.StatusBadRequest, constants.ErrorCodeInvalidInput, err.Error())
	case errors.Is(err, service.ErrExplanationBusy):
		dto.JsonErrorCode(c, http.StatusConflict, constants.ErrorCodeBusy, err.Error())
	case errors.Is(err, service.ErrExplanation):
		dto.JsonErrorCode(c, http.StatusBadGateway, constants.ErrorCodeExplanation, service.ErrExplanation.Error())
	default:
		c.Status(http.StatusInternalServerError)
		c.Error(err)
	}
}
