package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StudentExamService is the student-facing half of the exam lifecycle. Every
// decision goes through EvaluateAccess so the read (check) and write (start)
// paths can never drift apart.
type StudentExamService interface {
	ListExams(studentID uint) (*dto.CategorizedExamsDTO, error)
	CheckAccess(studentID, examID uint) (*dto.AccessCheckDTO, error)
	StartExam(studentID, examID uint) (*dto.StartExamDTO, error)
	GetResult(studentID, examID uint) (*dto.ResultDetailDTO, error)
}

type studentExamService struct {
	examRepo       repository.ExamRepository
	resultRepo     repository.ResultRepository
	resultViewRepo repository.ResultViewRepository
	now            func() time.Time
}

func NewStudentExamService(
	examRepo repository.ExamRepository,
	resultRepo repository.ResultRepository,
	resultViewRepo repository.ResultViewRepository,
) StudentExamService {
	return &studentExamService{
		examRepo:       examRepo,
		resultRepo:     resultRepo,
		resultViewRepo: resultViewRepo,
		now:            time.Now,
	}
}

func (s *studentExamService) ListExams(studentID uint) (*dto.CategorizedExamsDTO, error) {
	examsWithCount, err := s.examRepo.FindAllActive()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list active exams")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	now := s.now()
	out := &dto.CategorizedExamsDTO{
		Upcoming:  []dto.StudentExamDTO{},
		Available: []dto.StudentExamDTO{},
		Ended:     []dto.StudentExamDTO{},
		Completed: []dto.StudentExamDTO{},
	}

	for _, ewc := range examsWithCount {
		exam := ewc.Exam
		result, err := s.loadResult(exam.ID, studentID)
		if err != nil {
			return nil, err
		}
		decision := EvaluateAccess(now, &exam, result)

		entry := dto.StudentExamDTO{
			ID:            exam.ID,
			Title:         exam.Title,
			Description:   exam.Description,
			StartTime:     exam.StartTime,
			Duration:      exam.Duration,
			TotalMarks:    exam.TotalMarks,
			QuestionCount: ewc.QuestionCount,
			State:         string(decision.State),
		}

		switch decision.State {
		case StateCompleted:
			entry.TotalScore = &result.TotalScore
			entry.Percentage = &result.Percentage
			out.Completed = append(out.Completed, entry)
		case StateUpcoming:
			out.Upcoming = append(out.Upcoming, entry)
		case StateExpired:
			out.Ended = append(out.Ended, entry)
		default:
			out.Available = append(out.Available, entry)
		}
	}
	return out, nil
}

func (s *studentExamService) CheckAccess(studentID, examID uint) (*dto.AccessCheckDTO, error) {
	exam, result, err := s.loadExamAndResult(studentID, examID)
	if err != nil {
		return nil, err
	}
	decision := EvaluateAccess(s.now(), exam, result)
	resp := decisionToDTO(decision)
	if decision.State == StateCompleted && result != nil {
		resp.TotalScore = &result.TotalScore
		resp.Percentage = &result.Percentage
	}
	return resp, nil
}

// StartExam creates an inprogress attempt, or returns the existing one
// unchanged when called again: the same result id and the same end time.
func (s *studentExamService) StartExam(studentID, examID uint) (*dto.StartExamDTO, error) {
	exam, result, err := s.loadExamAndResult(studentID, examID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	decision := EvaluateAccess(now, exam, result)
	if !decision.Allowed {
		if decision.Reason == ReasonCompleted {
			return nil, ErrAlreadyCompleted
		}
		return nil, &AccessDeniedError{Decision: decision}
	}

	if decision.Resumed {
		return s.startResponse(exam, result, decision, true), nil
	}

	startTime := now
	endTime := decision.EffectiveEnd
	fresh := &model.Result{
		ExamID:    examID,
		StudentID: studentID,
		Status:    model.ResultInProgress,
		StartTime: &startTime,
		EndTime:   &endTime,
	}
	if err := s.resultRepo.Create(fresh); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent start won the race; resume its attempt.
			existing, loadErr := s.loadResult(examID, studentID)
			if loadErr != nil || existing == nil {
				return nil, fmt.Errorf("error reloading attempt after duplicate start: %w", loadErr)
			}
			if existing.Status == model.ResultCompleted {
				return nil, ErrAlreadyCompleted
			}
			resumedDecision := EvaluateAccess(now, exam, existing)
			if !resumedDecision.Allowed {
				return nil, &AccessDeniedError{Decision: resumedDecision}
			}
			return s.startResponse(exam, existing, resumedDecision, true), nil
		}
		log.Error().Err(err).Uint("examID", examID).Uint("studentID", studentID).Msg("Failed to create attempt")
		return nil, fmt.Errorf("database error starting exam: %w", err)
	}

	if err := s.examRepo.AddAttemptedStudent(examID, studentID); err != nil {
		// The attempt row is authoritative; the association is bookkeeping.
		log.Warn().Err(err).Uint("examID", examID).Uint("studentID", studentID).Msg("Failed to record attempted student")
	}

	return s.startResponse(exam, fresh, decision, false), nil
}

func (s *studentExamService) GetResult(studentID, examID uint) (*dto.ResultDetailDTO, error) {
	exam, result, err := s.loadExamAndResult(studentID, examID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrNotFound
	}
	if result.Status != model.ResultCompleted {
		return nil, ErrAttemptNotStarted
	}

	view := model.ResultView{
		ResultID:  result.ID,
		ExamID:    examID,
		StudentID: studentID,
		ViewedAt:  s.now(),
	}
	if err := s.resultViewRepo.Create(&view); err != nil {
		log.Warn().Err(err).Uint("resultID", result.ID).Msg("Failed to record result view")
	}

	return buildResultDetail(exam, result), nil
}

func (s *studentExamService) loadExamAndResult(studentID, examID uint) (*model.Exam, *model.Result, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		log.Error().Err(err).Uint("examID", examID).Msg("Failed to load exam")
		return nil, nil, fmt.Errorf("error fetching exam: %w", err)
	}
	if !exam.IsActive {
		return nil, nil, ErrExamInactive
	}
	result, err := s.loadResult(examID, studentID)
	if err != nil {
		return nil, nil, err
	}
	return exam, result, nil
}

func (s *studentExamService) loadResult(examID, studentID uint) (*model.Result, error) {
	result, err := s.resultRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Error().Err(err).Uint("examID", examID).Uint("studentID", studentID).Msg("Failed to load result")
		return nil, fmt.Errorf("error fetching result: %w", err)
	}
	return result, nil
}

func (s *studentExamService) startResponse(exam *model.Exam, result *model.Result, decision AccessDecision, resumed bool) *dto.StartExamDTO {
	resp := &dto.StartExamDTO{
		ResultID:         result.ID,
		ExamID:           exam.ID,
		ExamTitle:        exam.Title,
		RemainingMinutes: decision.RemainingMinutes,
		Resumed:          resumed,
		Questions:        toStudentQuestions(exam.Questions),
	}
	if result.StartTime != nil {
		resp.StartTime = *result.StartTime
	}
	if result.EndTime != nil {
		resp.EndTime = *result.EndTime
	} else {
		resp.EndTime = decision.EffectiveEnd
	}
	return resp
}

// toStudentQuestions strips the correct option from the student-facing view.
func toStudentQuestions(questions []model.Question) []dto.StudentQuestionDTO {
	out := make([]dto.StudentQuestionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.StudentQuestionDTO{
			ID:          q.ID,
			Text:        q.Text,
			Options:     q.Options,
			Marks:       q.Marks,
			OrderInExam: q.OrderInExam,
		})
	}
	return out
}

func decisionToDTO(d AccessDecision) *dto.AccessCheckDTO {
	resp := &dto.AccessCheckDTO{
		State:            string(d.State),
		Allowed:          d.Allowed,
		Reason:           d.Reason,
		StartTime:        d.StartTime,
		AvailabilityEnd:  d.AvailabilityEnd,
		RemainingMinutes: d.RemainingMinutes,
		MinutesUntilOpen: d.MinutesUntilOpen,
		Resumed:          d.Resumed,
	}
	if d.Allowed {
		end := d.EffectiveEnd
		resp.EffectiveEnd = &end
	}
	return resp
}

func buildResultDetail(exam *model.Exam, result *model.Result) *dto.ResultDetailDTO {
	detail := &dto.ResultDetailDTO{
		ID:          result.ID,
		ExamID:      result.ExamID,
		ExamTitle:   exam.Title,
		StudentID:   result.StudentID,
		Status:      string(result.Status),
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		SubmittedAt: result.SubmittedAt,
		TotalScore:  result.TotalScore,
		TotalMarks:  exam.TotalMarks,
		Percentage:  result.Percentage,
	}
	answers := make([]dto.AnswerResultDTO, 0, len(result.Answers))
	for _, a := range result.Answers {
		var row dto.AnswerResultDTO
		copier.Copy(&row, &a)
		answers = append(answers, row)
	}
	detail.Answers = answers
	return detail
}
