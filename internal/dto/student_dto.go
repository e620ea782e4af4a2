package dto

import "time"

// StudentCreateDTO is for an admin to create a student account. When Password
// is empty the student ID is used as the initial password.
type StudentCreateDTO struct {
	StudentID string `json:"student_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password,omitempty"`
}

// StudentResponseDTO is the admin-facing student view.
type StudentResponseDTO struct {
	ID                 uint       `json:"id"`
	StudentID          string     `json:"student_id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	IsBlocked          bool       `json:"is_blocked"`
	BlockedReason      *string    `json:"blocked_reason,omitempty"`
	BlockedAt          *time.Time `json:"blocked_at,omitempty"`
	SecurityViolations int        `json:"security_violations"`
	CreatedAt          time.Time  `json:"created_at"`
}

// SendExamLinkDTO requests exam-link mails for the given exam. When
// StudentIDs is empty the link is sent to every student owned by the admin.
type SendExamLinkDTO struct {
	ExamID     uint   `json:"exam_id" binding:"required"`
	StudentIDs []uint `json:"student_ids,omitempty"`
}

// MailFailureDTO is one undeliverable recipient within a bulk send.
type MailFailureDTO struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// SendExamLinkResponseDTO summarizes a bulk exam-link dispatch.
type SendExamLinkResponseDTO struct {
	Sent     int              `json:"sent"`
	Failed   int              `json:"failed"`
	Failures []MailFailureDTO `json:"failures,omitempty"`
}
