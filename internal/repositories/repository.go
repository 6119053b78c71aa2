package repositories

import (
	"context"
	"errors"
)

// Store-level sentinel errors. Implementations translate backend errors into
// these so services never match on gorm or redis error types directly.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repository aggregates all repository interfaces.
type Repository interface {
	User() UserRepository
	Conversation() ConversationRepository
	Session() SessionRepository

	// WithTransaction runs fn against a repository bound to a single
	// database transaction; any error rolls the transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
