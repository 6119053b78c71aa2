package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyrelay/chat-relay-service/internal/services"
	"github.com/studyrelay/chat-relay-service/internal/utils"
	"github.com/studyrelay/chat-relay-service/internal/validator"
)

type ChatHandler struct {
	BaseHandler
	service services.ChatService
}

func NewChatHandler(service services.ChatService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== CHAT ENDPOINTS =====

// Chat relays a message and returns the generated response
// @Summary Send a chat message
// @Description Record the message, obtain a response from the generator, and record both
// @Tags chat
// @Accept json
// @Produce json
// @Param request body validator.ChatRequest true "Chat payload"
// @Success 200 {object} services.ExchangeResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 503 {object} ErrorResponse "Response generator unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	h.LogRequest(c, "Processing chat message")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	var req validator.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Exchange(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History returns the caller's full conversation log
// @Summary Get conversation history
// @Description Get all recorded messages and responses for the authenticated user, oldest first
// @Tags chat
// @Produce json
// @Success 200 {object} services.HistoryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /history [get]
func (h *ChatHandler) History(c *gin.Context) {
	h.LogRequest(c, "Getting conversation history")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	history, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// ExportHistory downloads the conversation log as an Excel workbook
// @Summary Export conversation history
// @Description Download the full conversation log as an .xlsx file
// @Tags chat
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /history/export [get]
func (h *ChatHandler) ExportHistory(c *gin.Context) {
	h.LogRequest(c, "Exporting conversation history")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	data, err := h.service.ExportHistory(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("history_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== ERROR HANDLING =====

func (h *ChatHandler) handleServiceError(c *gin.Context, err error) {
	// Map service errors to HTTP status codes
	switch {
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrCollaboratorUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Message: "Response generator is unavailable, please try again later",
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
