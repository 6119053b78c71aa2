package models

import (
	"time"
)

type EntryKind string

const (
	// EntryMessage is a user-authored message.
	EntryMessage EntryKind = "message"
	// EntryResponse is a collaborator-generated response.
	EntryResponse EntryKind = "response"
)

// ConversationEntry is one append-only record of the chat log. Entries are
// never mutated or deleted; consumers rely on reads ordered by created_at
// ascending with the auto-increment ID breaking ties.
type ConversationEntry struct {
	ID     uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID uint      `json:"user_id" gorm:"not null;index:idx_conversation_user_created,priority:1"`
	Kind   EntryKind `json:"kind" gorm:"not null;size:10"`
	Text   string    `json:"text" gorm:"not null;type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_conversation_user_created,priority:2"`
}

func (ConversationEntry) TableName() string {
	return "conversation_entries"
}
