package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ResultStatus string

const (
	ResultNotStarted ResultStatus = "notstarted"
	ResultInProgress ResultStatus = "inprogress"
	ResultCompleted  ResultStatus = "completed"
)

// ResultAnswer is the per-question scoring breakdown persisted with a Result.
// Marks may be negative for an incorrectly answered question; only the
// aggregate TotalScore is clamped at zero.
type ResultAnswer struct {
	QuestionID     uint    `json:"question_id"`
	SelectedOption *int    `json:"selected_option,omitempty"` // nil means unattempted
	IsCorrect      bool    `json:"is_correct"`
	Marks          float64 `json:"marks"`
}

// Result tracks a single student's progress through one exam. Uniqueness of
// (exam, student) is enforced at the storage layer so concurrent start calls
// cannot create a second attempt.
type Result struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	ExamID    uint    `json:"exam_id" gorm:"not null;uniqueIndex:idx_results_exam_student"`
	Exam      Exam    `json:"-" gorm:"foreignKey:ExamID"`
	StudentID uint    `json:"student_id" gorm:"not null;uniqueIndex:idx_results_exam_student"`
	Student   Student `json:"-" gorm:"foreignKey:StudentID"`

	Status ResultStatus `json:"status" gorm:"default:'notstarted'"`

	// StartTime is when the attempt began; EndTime is the allotted cutoff
	// (nominal duration truncated to the availability window).
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	Answers     datatypes.JSONSlice[ResultAnswer] `json:"answers,omitempty"`
	TotalScore  float64                           `json:"total_score"`
	Percentage  float64                           `json:"percentage"`
	SubmittedAt *time.Time                        `json:"submitted_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
