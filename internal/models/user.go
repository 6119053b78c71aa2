package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
)

// User is an identity record. Records are created on registration and never
// updated or deleted by this service.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	StudentID string `json:"student_id" gorm:"uniqueIndex;not null;size:12"`
	Name      string `json:"name" gorm:"not null;size:100"`

	// Profile info
	PhoneNumber string `json:"phone_number" gorm:"not null;size:12"`
	SchoolName  string `json:"school_name" gorm:"not null;size:100"`
	Grade       string `json:"grade" gorm:"not null;size:3"`
	ClassNo     string `json:"class_no" gorm:"not null;size:3"`

	Role UserRole `json:"role" gorm:"not null;size:20;default:student"`

	// One-way hashed credential, scheme-prefixed. Never serialized.
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
