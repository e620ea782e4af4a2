package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmitSkewGrace absorbs client clock skew and network latency at the
// submission deadline. The deadline itself is enforced server-side.
const SubmitSkewGrace = time.Minute

// SubmissionService turns a batch of submitted answers into a completed,
// scored result. The completed transition is one-way.
type SubmissionService interface {
	SubmitExam(studentID, examID uint, req dto.SubmitExamDTO) (*dto.ResultDetailDTO, error)
}

type submissionService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
	now        func() time.Time
}

func NewSubmissionService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository) SubmissionService {
	return &submissionService{examRepo: examRepo, resultRepo: resultRepo, now: time.Now}
}

func (s *submissionService) SubmitExam(studentID, examID uint, req dto.SubmitExamDTO) (*dto.ResultDetailDTO, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Uint("examID", examID).Msg("SubmitExam: failed to load exam")
		return nil, fmt.Errorf("error fetching exam: %w", err)
	}
	if len(exam.Questions) == 0 {
		return nil, fmt.Errorf("exam %d has no questions, submission is not possible", examID)
	}

	result, err := s.resultRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotStarted
		}
		log.Error().Err(err).Uint("examID", examID).Uint("studentID", studentID).Msg("SubmitExam: failed to load result")
		return nil, fmt.Errorf("error fetching result: %w", err)
	}

	switch result.Status {
	case model.ResultCompleted:
		return nil, ErrAlreadyCompleted
	case model.ResultInProgress:
		// proceed
	default:
		return nil, ErrAttemptNotStarted
	}

	// Re-validate the deadline at submission time rather than trusting the
	// client-reported timer.
	now := s.now()
	if result.EndTime != nil && now.After(result.EndTime.Add(SubmitSkewGrace)) {
		decision := EvaluateAccess(now, exam, result)
		decision.Allowed = false
		decision.Reason = ReasonExpired
		return nil, &AccessDeniedError{Decision: decision}
	}

	breakdown := ScoreSubmission(exam.Questions, req.Answers)

	result.Status = model.ResultCompleted
	result.Answers = breakdown.Answers
	result.TotalScore = breakdown.TotalScore
	result.Percentage = breakdown.Percentage
	result.SubmittedAt = &now

	if err := s.resultRepo.Update(result); err != nil {
		log.Error().Err(err).Uint("resultID", result.ID).Msg("SubmitExam: failed to persist scored result")
		return nil, fmt.Errorf("database error saving result: %w", err)
	}

	log.Info().
		Uint("examID", examID).
		Uint("studentID", studentID).
		Float64("totalScore", breakdown.TotalScore).
		Float64("percentage", breakdown.Percentage).
		Msg("Exam submission scored")

	return buildResultDetail(exam, result), nil
}
