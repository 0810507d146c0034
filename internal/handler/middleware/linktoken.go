package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"tablebook/internal/pkg/linktoken"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LinkTokenMiddleware guards the guest self-service endpoints. Requests carry
// a signed capability token instead of a session; the token itself names the
// reservation it applies to.
type LinkTokenMiddleware struct {
	tokens *linktoken.Service
}

const ctxLinkReservationIDKey = "link_reservation_id"

func NewLinkTokenMiddleware(tokens *linktoken.Service) *LinkTokenMiddleware {
	return &LinkTokenMiddleware{tokens: tokens}
}

func (m *LinkTokenMiddleware) RequireLinkToken(action linktoken.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": "Link token required"},
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(token, action)
		if err != nil {
			slog.Warn("Link token rejected", "action", string(action), "error", err.Error())
			status := http.StatusUnauthorized
			msg := "Invalid link token"
			if errors.Is(err, linktoken.ErrExpiredToken) {
				status = http.StatusGone
				msg = "Link token expired"
			}
			c.JSON(status, gin.H{
				"error": gin.H{"code": "UNAUTHORIZED", "message": msg},
			})
			c.Abort()
			return
		}

		c.Set(ctxLinkReservationIDKey, claims.ReservationID)
		c.Next()
	}
}

func GetLinkReservationID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxLinkReservationIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
