package handlers

import (
	"context"
	"net/http"
	"slices"
	"time"

	"flashcard-service/internal/dto"
	"flashcard-service/internal/middleware"
	"flashcard-service/internal/models"
	ws "flashcard-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type TopicGetter interface {
	GetTopic(ctx context.Context, topicID string) (*models.Topic, error)
}

type WebSocketHandler struct {
	hub      *ws.Hub
	topics   TopicGetter
	upgrader websocket.Upgrader
}

// NewWebSocketHandler accepts any origin when allowedOrigins is empty or
// contains "*".
func NewWebSocketHandler(hub *ws.Hub, topics TopicGetter, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		topics: topics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// HandleWebSocket upgrades /ws?topic_id=... into a game session. Identity is
// resolved beforehand by middleware.Identity.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	topicID := c.Query("topic_id")
	if topicID == "" {
		dto.JsonError(c, http.StatusBadRequest, "Missing topic_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if _, err := h.topics.GetTopic(ctx, topicID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to upgrade connection")
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	client := ws.NewClient(h.hub, conn, uuid.NewString(), userID, topicID)
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
