package repositories

import (
	"context"

	"github.com/studyrelay/chat-relay-service/internal/models"
)

// ConversationRepository owns the append-only chat log.
type ConversationRepository interface {
	// Append durably stores one entry or fails the whole write. The entry's
	// ID and CreatedAt are assigned by the store.
	Append(ctx context.Context, entry *models.ConversationEntry) error

	// ListByUser returns all entries for a user ordered by creation time
	// ascending, insertion order breaking ties. A user with no entries gets
	// an empty slice, not an error.
	ListByUser(ctx context.Context, userID uint) ([]*models.ConversationEntry, error)

	CountByUser(ctx context.Context, userID uint) (int64, error)
}
