package model

import (
	"time"

	"gorm.io/gorm"
)

// PreAccessGrace is the window before StartTime during which access checks
// already permit entry.
const PreAccessGrace = 15 * time.Minute

type Exam struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title" gorm:"not null;uniqueIndex:idx_exams_title_owner"`
	Description string `json:"description,omitempty"`

	StartTime time.Time `json:"start_time" gorm:"not null"`
	// Duration is the wall-clock time allotted per attempt, in minutes.
	Duration int `json:"duration" gorm:"not null"`
	// ActiveDuration is the window after StartTime during which attempts may
	// begin or continue, in hours.
	ActiveDuration int `json:"active_duration" gorm:"not null"`

	Questions  []Question `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TotalMarks float64    `json:"total_marks"` // derived: sum of question marks
	IsActive   bool       `json:"is_active" gorm:"default:true"`

	CreatedByID uint  `json:"created_by_id" gorm:"not null;index;uniqueIndex:idx_exams_title_owner"`
	CreatedBy   Admin `json:"-" gorm:"foreignKey:CreatedByID"`

	StudentsAttempted []Student `json:"-" gorm:"many2many:exam_attempted_students;"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AvailabilityEnd is the instant after which attempts may no longer begin or
// continue.
func (e *Exam) AvailabilityEnd() time.Time {
	return e.StartTime.Add(time.Duration(e.ActiveDuration) * time.Hour)
}

// PreAccessStart is the earliest instant at which a student may enter the exam.
func (e *Exam) PreAccessStart() time.Time {
	return e.StartTime.Add(-PreAccessGrace)
}

// AttemptDuration is the nominal per-attempt time limit.
func (e *Exam) AttemptDuration() time.Duration {
	return time.Duration(e.Duration) * time.Minute
}
