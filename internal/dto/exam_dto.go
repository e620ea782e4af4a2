package dto

import "time"

// QuestionCreateDTO is used within ExamCreateDTO and ExamUpdateDTO.
type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,len=4,dive,required"`
	CorrectOption *int     `json:"correct_option" binding:"required,min=0,max=3"`
	Marks         float64  `json:"marks" binding:"omitempty,gt=0"` // defaults to 1
}

// ExamCreateDTO is for an admin to create a new exam with all its questions.
type ExamCreateDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description,omitempty"`
	StartTime   time.Time           `json:"start_time" binding:"required"`
	Duration    int                 `json:"duration" binding:"required,min=1"`        // minutes per attempt
	ActiveDuration int              `json:"active_duration" binding:"required,min=1"` // hours after start_time
	Questions   []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// ExamUpdateDTO updates exam metadata and, when Questions is non-nil, replaces
// the question list wholesale. Only allowed strictly before the exam starts.
type ExamUpdateDTO struct {
	Title          *string             `json:"title,omitempty"`
	Description    *string             `json:"description,omitempty"`
	StartTime      *time.Time          `json:"start_time,omitempty"`
	Duration       *int                `json:"duration,omitempty" binding:"omitempty,min=1"`
	ActiveDuration *int                `json:"active_duration,omitempty" binding:"omitempty,min=1"`
	Questions      []QuestionCreateDTO `json:"questions,omitempty" binding:"omitempty,min=1,dive"`
}

// QuestionResponseDTO is the admin-facing question view, correct option included.
type QuestionResponseDTO struct {
	ID            uint     `json:"id"`
	ExamID        uint     `json:"exam_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Marks         float64  `json:"marks"`
	OrderInExam   int      `json:"order_in_exam"`
}

// StudentQuestionDTO is the student-facing question view. The correct option
// is deliberately absent.
type StudentQuestionDTO struct {
	ID          uint     `json:"id"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Marks       float64  `json:"marks"`
	OrderInExam int      `json:"order_in_exam"`
}

// ExamResponseDTO is the full admin-facing exam view.
type ExamResponseDTO struct {
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description,omitempty"`
	StartTime      time.Time             `json:"start_time"`
	Duration       int                   `json:"duration"`
	ActiveDuration int                   `json:"active_duration"`
	TotalMarks     float64               `json:"total_marks"`
	IsActive       bool                  `json:"is_active"`
	Questions      []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ExamSummaryDTO is used for listing exams.
type ExamSummaryDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	StartTime      time.Time `json:"start_time"`
	Duration       int       `json:"duration"`
	ActiveDuration int       `json:"active_duration"`
	TotalMarks     float64   `json:"total_marks"`
	IsActive       bool      `json:"is_active"`
	QuestionCount  int       `json:"question_count"`
}

// StudentExamDTO is an exam summary as seen by a student, annotated with the
// attempt state for that student.
type StudentExamDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartTime     time.Time `json:"start_time"`
	Duration      int       `json:"duration"`
	TotalMarks    float64   `json:"total_marks"`
	QuestionCount int       `json:"question_count"`
	State         string    `json:"state"`
	TotalScore    *float64  `json:"total_score,omitempty"` // set when completed
	Percentage    *float64  `json:"percentage,omitempty"`  // set when completed
}

// CategorizedExamsDTO groups a student's exams by attempt state.
type CategorizedExamsDTO struct {
	Upcoming  []StudentExamDTO `json:"upcoming"`
	Available []StudentExamDTO `json:"available"`
	Ended     []StudentExamDTO `json:"ended"`
	Completed []StudentExamDTO `json:"completed"`
}
