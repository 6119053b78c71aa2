package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyrelay/chat-relay-service/internal/services"
	"github.com/studyrelay/chat-relay-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	chatHandler    *ChatHandler
	authMiddleware *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		chatHandler:    NewChatHandler(serviceManager.Chat(), logger),
		authMiddleware: NewSessionAuthMiddleware(serviceManager.Auth(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public auth routes — no session required
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", hm.authHandler.Register)
			authRoutes.POST("/login", hm.authHandler.Login)
		}

		// Protected routes — session validated before any handler runs
		protected := v1.Group("")
		protected.Use(hm.authMiddleware.AuthMiddleware())
		{
			protected.POST("/auth/logout", hm.authHandler.Logout)
			protected.GET("/profile", hm.authHandler.Profile)

			protected.POST("/chat", hm.chatHandler.Chat)
			protected.GET("/history", hm.chatHandler.History)
			protected.GET("/history/export", hm.chatHandler.ExportHistory)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "chat-relay-service",
		})
	})
}
