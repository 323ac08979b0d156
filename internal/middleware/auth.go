package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidtube/vidtube-api/internal/auth"
	"github.com/vidtube/vidtube-api/pkg/logger"
)

const (
	headerAuth   = "Authorization"
	bearerPrefix = "Bearer "

	// contextUserID is the gin context key holding the authenticated
	// user's ID.
	contextUserID = "userID"
	// contextUsername is the gin context key holding the authenticated
	// user's username.
	contextUsername = "username"
)

// RequireAuth returns a middleware that rejects requests without a
// valid bearer token and stores the caller's identity on the context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Log.Warn("rejected request with invalid token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			unauthorized(c)
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Set(contextUsername, claims.Username)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the context.
// It must only be called behind RequireAuth.
func CurrentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(contextUserID)
	userID, _ := id.(uuid.UUID)
	return userID
}

// extractToken pulls the bearer token from the Authorization header, or
// falls back to the accessToken cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader(headerAuth)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}

	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return ""
	}
	return cookie
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"message":    "Unauthorized",
		"success":    false,
		"errors":     []string{},
	})
}
