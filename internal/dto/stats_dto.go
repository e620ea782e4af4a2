package dto

import "time"

// RecentExamDTO is the public view of a recently scheduled exam.
type RecentExamDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	Duration  int       `json:"duration"`
}

// TopPerformerDTO is one leaderboard row, aggregated over completed results.
type TopPerformerDTO struct {
	StudentCode       string  `json:"student_code"`
	StudentName       string  `json:"student_name"`
	ExamsTaken        int     `json:"exams_taken"`
	AveragePercentage float64 `json:"average_percentage"`
}

// PlatformStatsDTO is the public aggregate snapshot of the portal.
type PlatformStatsDTO struct {
	TotalExams        int64   `json:"total_exams"`
	TotalStudents     int64   `json:"total_students"`
	TotalSubmissions  int64   `json:"total_submissions"`
	AveragePercentage float64 `json:"average_percentage"`
}
