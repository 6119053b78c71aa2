package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/studyrelay/chat-relay-service/internal/models"
	"github.com/studyrelay/chat-relay-service/internal/repositories"
)

// ConversationPostgreSQL implements ConversationRepository backed by gorm/postgres.
type ConversationPostgreSQL struct {
	db *gorm.DB
}

func NewConversationPostgreSQL(db *gorm.DB) repositories.ConversationRepository {
	return &ConversationPostgreSQL{db: db}
}

func (r *ConversationPostgreSQL) Append(ctx context.Context, entry *models.ConversationEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append conversation entry: %w", err)
	}
	return nil
}

func (r *ConversationPostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*models.ConversationEntry, error) {
	// created_at ascending is the ordering contract; the auto-increment id
	// resolves same-timestamp ties by insertion order.
	entries := make([]*models.ConversationEntry, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation entries: %w", err)
	}
	return entries, nil
}

func (r *ConversationPostgreSQL) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count conversation entries: %w", err)
	}
	return count, nil
}
