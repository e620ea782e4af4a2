package model

import "time"

// ViolationEvent is an append-only record of a proctoring violation reported
// by the exam client (tab switch, fullscreen exit, copy attempt, ...).
type ViolationEvent struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ExamID     uint      `json:"exam_id" gorm:"not null;index"`
	StudentID  uint      `json:"student_id" gorm:"not null;index"`
	Type       string    `json:"type" gorm:"not null"`
	OccurredAt time.Time `json:"occurred_at" gorm:"not null"`
	// CountInExam is the client-reported running count within this exam.
	CountInExam int       `json:"count_in_exam" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
