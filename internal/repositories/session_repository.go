package repositories

import (
	"context"

	"github.com/studyrelay/chat-relay-service/internal/models"
)

// SessionRepository owns ephemeral session records. Records carry an absolute
// expiry fixed at creation; implementations must never extend it.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error

	// Get returns ErrNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*models.Session, error)

	Delete(ctx context.Context, token string) error
}
