package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyrelay/chat-relay-service/internal/auth"
	"github.com/studyrelay/chat-relay-service/internal/models"
	"github.com/studyrelay/chat-relay-service/internal/services"
	"github.com/studyrelay/chat-relay-service/internal/utils"
	"github.com/studyrelay/chat-relay-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== AUTH ENDPOINTS =====

// Register creates a new user account
// @Summary Register a new user
// @Description Create a user account with a unique student identifier
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.RegisterRequest true "Registration payload"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Student ID already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req validator.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and opens a session
// @Summary Log in
// @Description Verify credentials and issue a session token, delivered both in the body and as a cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.LoginRequest true "Login payload"
// @Success 200 {object} models.SessionInfo
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in user")

	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	fingerprint := auth.Fingerprint(c.ClientIP(), c.Request.UserAgent())

	session, err := h.service.Login(c.Request.Context(), &req, fingerprint)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// The cookie expires together with the session; it is never refreshed.
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetCookie(SessionCookieName, session.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, session)
}

// Logout terminates the current session
// @Summary Log out
// @Description Destroy the session and clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out user")

	token, err := GetSessionTokenFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   "logged out",
		Timestamp: time.Now().UTC(),
	})
}

// Profile returns the authenticated user's account information
// @Summary Get profile
// @Description Get the account information of the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	h.LogRequest(c, "Getting user profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ===== ERROR HANDLING =====

func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	// Map service errors to HTTP status codes
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Student ID is already registered",
		})
	case errors.Is(err, services.ErrAuthenticationFailed):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid student identifier or password",
		})
	case errors.Is(err, services.ErrSessionInvalid):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Session is invalid or has expired",
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
