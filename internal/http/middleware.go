package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ethics-game/internal/domain"
)

const (
	contextUserKey      = "current_user"
	contextRequestIDKey = "request_id"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func accessLogMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Info("request")
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(contextRequestIDKey)
}

// requireUser gates protected routes. It extracts the bearer token, verifies
// it, and resolves the subject to a stored user. Every failure branch answers
// with the same 401 so callers cannot tell a bad token from a missing user.
func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.unauthorized(c)
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil || claims.Subject == "" {
			h.logger.WithField("request_id", requestID(c)).Debugf("token rejected: %v", err)
			h.unauthorized(c)
			return
		}

		user, err := h.users.GetByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			h.logger.WithField("request_id", requestID(c)).Debugf("subject lookup failed: %v", err)
			h.unauthorized(c)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func (h *Handler) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func currentUser(c *gin.Context) *domain.User {
	user, _ := c.MustGet(contextUserKey).(*domain.User)
	return user
}
