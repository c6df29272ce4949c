package middleware

import (
	"net/http"
	"strings"

	"flashcard-service/internal/dto"
	"flashcard-service/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// Identity resolves the caller. A gateway-supplied X-User-ID wins; otherwise a
// bearer token (header or token query) is validated against secret. With an
// empty secret unauthenticated callers pass through anonymously.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(ContextUserID, userID)
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			if secret == "" {
				c.Next()
				return
			}
			dto.JsonError(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}
		if secret == "" {
			dto.JsonError(c, http.StatusUnauthorized, "Token authentication is not configured")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateAccessToken(token, secret)
		if err != nil {
			dto.JsonError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}
