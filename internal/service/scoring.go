package service

import (
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
)

// NegativeMarkFactor is the fraction of a question's marks deducted for an
// incorrectly answered (but attempted) question.
const NegativeMarkFactor = 0.5

// ScoreBreakdown is the outcome of scoring one submission against the
// authoritative question list.
type ScoreBreakdown struct {
	Answers    []model.ResultAnswer
	TotalScore float64 // aggregate, clamped at 0
	TotalMarks float64
	Percentage float64
}

// ScoreSubmission grades submitted answers against the exam's questions.
//
// Per question: a correct selection earns full marks, a wrong selection
// deducts NegativeMarkFactor times the marks, an unattempted question
// contributes exactly 0. An answer referencing an unknown question id
// contributes 0 and is recorded as incorrect. Only the aggregate is clamped
// at zero; individual contributions may stay negative in the breakdown.
// Percentage is defined as 0 when the exam carries no marks.
func ScoreSubmission(questions []model.Question, submitted []dto.SubmittedAnswerDTO) ScoreBreakdown {
	selectedByQuestion := make(map[uint]*int, len(submitted))
	known := make(map[uint]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}
	var unknown []dto.SubmittedAnswerDTO
	for _, a := range submitted {
		if !known[a.QuestionID] {
			unknown = append(unknown, a)
			continue
		}
		if _, dup := selectedByQuestion[a.QuestionID]; dup {
			continue // first answer per question wins
		}
		selectedByQuestion[a.QuestionID] = a.SelectedOption
	}

	breakdown := ScoreBreakdown{
		Answers: make([]model.ResultAnswer, 0, len(questions)+len(unknown)),
	}
	raw := 0.0
	for _, q := range questions {
		breakdown.TotalMarks += q.Marks
		entry := model.ResultAnswer{QuestionID: q.ID}
		selected, attempted := selectedByQuestion[q.ID]
		if attempted && selected != nil {
			entry.SelectedOption = selected
			if *selected == q.CorrectOption {
				entry.IsCorrect = true
				entry.Marks = q.Marks
			} else {
				entry.Marks = -NegativeMarkFactor * q.Marks
			}
		}
		raw += entry.Marks
		breakdown.Answers = append(breakdown.Answers, entry)
	}

	for _, a := range unknown {
		breakdown.Answers = append(breakdown.Answers, model.ResultAnswer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
		})
	}

	if raw > 0 {
		breakdown.TotalScore = raw
	}
	if breakdown.TotalMarks > 0 {
		breakdown.Percentage = breakdown.TotalScore / breakdown.TotalMarks * 100
	}
	return breakdown
}
