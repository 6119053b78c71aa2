package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyrelay/chat-relay-service/internal/utils"
)

// ErrorResponse is the common error body for all endpoints
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler provides shared logging helpers for HTTP handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with its request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.GetContextLogger(c, h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// LogError logs an unexpected handler error
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.GetContextLogger(c, h.logger).Error(msg,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
}
