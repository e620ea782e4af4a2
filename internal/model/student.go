package model

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	StudentID string `json:"student_id" gorm:"not null;uniqueIndex"`
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"not null;uniqueIndex"`
	Password  string `json:"-" gorm:"not null"` // bcrypt hash

	// Short-lived credential mailed out with an exam link. Stored hashed,
	// valid until TempPasswordExpiry.
	TempExamPassword   *string    `json:"-"`
	TempPasswordExpiry *time.Time `json:"temp_password_expiry,omitempty"`

	IsBlocked     bool       `json:"is_blocked" gorm:"default:false"`
	BlockedReason *string    `json:"blocked_reason,omitempty"`
	BlockedAt     *time.Time `json:"blocked_at,omitempty"`

	// Lifetime counter, incremented when a single exam accumulates enough
	// violation reports. Never decremented.
	SecurityViolations int `json:"security_violations" gorm:"default:0"`

	CreatedByID uint           `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   Admin          `json:"-" gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
