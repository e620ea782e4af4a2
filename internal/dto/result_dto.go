package dto

import "time"

// SubmittedAnswerDTO is one answer within an exam submission. SelectedOption
// may be null, meaning the question was left unattempted.
type SubmittedAnswerDTO struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption *int `json:"selected_option" binding:"omitempty,min=0,max=3"`
}

// SubmitExamDTO is the request body for submitting an attempt.
type SubmitExamDTO struct {
	Answers []SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
}

// AnswerResultDTO is the per-question breakdown within a result.
type AnswerResultDTO struct {
	QuestionID     uint    `json:"question_id"`
	SelectedOption *int    `json:"selected_option,omitempty"`
	IsCorrect      bool    `json:"is_correct"`
	Marks          float64 `json:"marks"`
}

// ResultDetailDTO is the full view of a completed (or in-progress) attempt.
type ResultDetailDTO struct {
	ID          uint              `json:"id"`
	ExamID      uint              `json:"exam_id"`
	ExamTitle   string            `json:"exam_title,omitempty"`
	StudentID   uint              `json:"student_id"`
	Status      string            `json:"status"`
	StartTime   *time.Time        `json:"start_time,omitempty"`
	EndTime     *time.Time        `json:"end_time,omitempty"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	Answers     []AnswerResultDTO `json:"answers,omitempty"`
	TotalScore  float64           `json:"total_score"`
	TotalMarks  float64           `json:"total_marks"`
	Percentage  float64           `json:"percentage"`
}

// ExamResultRowDTO is one row of the admin-facing results listing for an exam.
type ExamResultRowDTO struct {
	ResultID    uint       `json:"result_id"`
	StudentID   uint       `json:"student_id"`
	StudentCode string     `json:"student_code"`
	StudentName string     `json:"student_name"`
	Status      string     `json:"status"`
	TotalScore  float64    `json:"total_score"`
	Percentage  float64    `json:"percentage"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// AccessCheckDTO reports the attempt state machine's decision for a
// (student, exam) pair. It doubles as the 403 body for timing denials.
type AccessCheckDTO struct {
	State            string     `json:"state"`
	Allowed          bool       `json:"allowed"`
	Reason           string     `json:"reason"`
	StartTime        time.Time  `json:"start_time"`
	AvailabilityEnd  time.Time  `json:"availability_end"`
	EffectiveEnd     *time.Time `json:"effective_end,omitempty"`
	RemainingMinutes int        `json:"remaining_minutes,omitempty"`
	MinutesUntilOpen int        `json:"minutes_until_open,omitempty"`
	Resumed          bool       `json:"resumed,omitempty"`
	TotalScore       *float64   `json:"total_score,omitempty"` // set when completed
	Percentage       *float64   `json:"percentage,omitempty"`
}

// CheckExamDTO asks for the access decision for an exam named in the body.
type CheckExamDTO struct {
	ExamID uint `json:"exam_id" binding:"required"`
}

// StartExamDTO is returned when an attempt is started or resumed.
type StartExamDTO struct {
	ResultID         uint                 `json:"result_id"`
	ExamID           uint                 `json:"exam_id"`
	ExamTitle        string               `json:"exam_title"`
	StartTime        time.Time            `json:"start_time"`
	EndTime          time.Time            `json:"end_time"`
	RemainingMinutes int                  `json:"remaining_minutes"`
	Resumed          bool                 `json:"resumed"`
	Questions        []StudentQuestionDTO `json:"questions"`
}

// ViolationReportDTO is the request body for reporting a proctoring violation.
type ViolationReportDTO struct {
	Type      string    `json:"type" binding:"required"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Count     int       `json:"count" binding:"required,min=1"`
}

// ViolationAckDTO acknowledges a recorded violation and reports any
// escalation it triggered.
type ViolationAckDTO struct {
	Recorded           bool `json:"recorded"`
	LifetimeViolations int  `json:"lifetime_violations"`
	StudentBlocked     bool `json:"student_blocked"`
}
