package model

import "time"

// ResultView is an append-only audit row written each time a completed result
// is viewed by its owner. Analytics only.
type ResultView struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ResultID  uint      `json:"result_id" gorm:"not null;index"`
	ExamID    uint      `json:"exam_id" gorm:"not null;index"`
	StudentID uint      `json:"student_id" gorm:"not null;index"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"not null"`
}
