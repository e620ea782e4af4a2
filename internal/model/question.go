package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OptionsPerQuestion is fixed: every question carries exactly four options.
const OptionsPerQuestion = 4

type Question struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	ExamID uint   `json:"exam_id" gorm:"not null;index"`
	Text   string `json:"text" gorm:"type:text;not null"`
	// Options always holds exactly OptionsPerQuestion entries.
	Options datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	// CorrectOption indexes into Options, range [0,3]. Never exposed on the
	// student-facing read path.
	CorrectOption int       `json:"correct_option" gorm:"not null"`
	Marks         float64   `json:"marks" gorm:"default:1"`
	OrderInExam   int       `json:"order_in_exam" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
