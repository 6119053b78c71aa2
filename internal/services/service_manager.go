package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/studyrelay/chat-relay-service/internal/auth"
	"github.com/studyrelay/chat-relay-service/internal/chatbot"
	"github.com/studyrelay/chat-relay-service/internal/events"
	"github.com/studyrelay/chat-relay-service/internal/repositories"
	"github.com/studyrelay/chat-relay-service/internal/validator"
)

// ServiceManager wires services together and manages their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Chat() ChatService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerConfig holds configuration for the service manager.
type ServiceManagerConfig struct {
	SessionLifetime time.Duration
	GenerateTimeout time.Duration
}

type serviceManager struct {
	repo      repositories.Repository
	hasher    auth.PasswordHasher
	generator chatbot.ResponseGenerator
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger
	config    ServiceManagerConfig

	authService AuthService
	chatService ChatService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(
	repo repositories.Repository,
	hasher auth.PasswordHasher,
	generator chatbot.ResponseGenerator,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger *slog.Logger,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		hasher:    hasher,
		generator: generator,
		validator: v,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if sm.config.SessionLifetime <= 0 {
		return fmt.Errorf("session lifetime must be positive")
	}
	if sm.config.GenerateTimeout <= 0 {
		return fmt.Errorf("generate timeout must be positive")
	}

	sm.authService = NewAuthService(sm.repo, sm.hasher, sm.validator, sm.publisher, sm.logger, sm.config.SessionLifetime)
	sm.logger.Info("Auth service initialized")

	sm.chatService = NewChatService(sm.repo, sm.generator, sm.validator, sm.publisher, sm.logger, sm.config.GenerateTimeout)
	sm.logger.Info("Chat service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.authService == nil {
		panic("auth service not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Chat() ChatService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized || sm.chatService == nil {
		panic("chat service not initialized")
	}
	return sm.chatService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Warn("failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	return nil
}
