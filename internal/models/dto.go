package models

import (
	"time"
)

// SessionInfo is the login response payload; the raw token is also delivered
// as a cookie by the boundary layer.
type SessionInfo struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	StudentID string    `json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HistoryItem is one row of the history view.
type HistoryItem struct {
	Kind      EntryKind `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
