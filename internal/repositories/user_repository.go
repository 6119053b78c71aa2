package repositories

import (
	"context"

	"github.com/studyrelay/chat-relay-service/internal/models"
)

// UserRepository owns identity records. Users are created once at
// registration and never deleted; the only permitted update is a lazy
// credential re-hash after a successful login.
type UserRepository interface {
	// Create stores a new user. Returns ErrDuplicate when the student
	// identifier already exists; the check is enforced by a unique index so
	// it holds under concurrent registration attempts.
	Create(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.User, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)

	// UpdatePasswordHash replaces the stored credential digest, used when a
	// legacy-scheme digest is re-hashed on login.
	UpdatePasswordHash(ctx context.Context, id uint, digest string) error
}
