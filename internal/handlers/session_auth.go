package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studyrelay/chat-relay-service/internal/auth"
	"github.com/studyrelay/chat-relay-service/internal/services"
	"github.com/studyrelay/chat-relay-service/internal/utils"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session_token"

// SessionAuthMiddleware gates protected routes behind session validation
type SessionAuthMiddleware struct {
	authService services.AuthService
	logger      utils.Logger
}

// NewSessionAuthMiddleware creates a new session authentication middleware
func NewSessionAuthMiddleware(authService services.AuthService, logger utils.Logger) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// AuthMiddleware returns a Gin middleware function for session authentication.
// The token comes from the session cookie or a Bearer header; it is checked
// together with the caller's fingerprint before any handler runs.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authentication required",
			})
			c.Abort()
			return
		}

		fingerprint := auth.Fingerprint(c.ClientIP(), c.Request.UserAgent())

		session, err := sam.authService.Validate(c.Request.Context(), token, fingerprint)
		if err != nil {
			// A session-store outage is not a dead session: the token must
			// survive for a retry, so only ErrSessionInvalid gets a 401.
			if errors.Is(err, services.ErrSessionInvalid) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "unauthorized",
					"message": "session is invalid or has expired",
				})
			} else {
				utils.GetContextLogger(c, sam.logger).Error("session validation failed",
					"path", c.Request.URL.Path,
					"error", err,
				)
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"error":   "service_unavailable",
					"message": "session could not be verified, please retry",
				})
			}
			c.Abort()
			return
		}

		// Set session information in context
		c.Set("user_id", session.UserID)
		c.Set("student_id", session.StudentID)
		c.Set("session_token", session.Token)

		c.Next()
	}
}

// extractToken reads the session token from the cookie, falling back to an
// Authorization Bearer header for non-browser clients
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ""
	}
	return tokenParts[1]
}

// GetUserIDFromContext extracts the authenticated user ID from Gin context
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}

// GetSessionTokenFromContext extracts the session token from Gin context
func GetSessionTokenFromContext(c *gin.Context) (string, error) {
	token, exists := c.Get("session_token")
	if !exists {
		return "", fmt.Errorf("session token not found in context")
	}

	t, ok := token.(string)
	if !ok {
		return "", fmt.Errorf("invalid session token type in context")
	}

	return t, nil
}
