package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse.Code uses the machine codes of websocket error frames.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func JsonError(c *gin.Context, status int, message ...string) {
	JsonErrorCode(c, status, "", message...)
}

func JsonErrorCode(c *gin.Context, status int, code string, message ...string) {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}

	c.JSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Message: msg,
	})
}
