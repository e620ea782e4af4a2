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

// ExamService is the admin-facing exam lifecycle: create, edit (only strictly
// before start), soft-disable, hard delete with cascading results.
type ExamService interface {
	CreateExam(adminID uint, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error)
	UpdateExam(adminID, examID uint, req dto.ExamUpdateDTO) (*dto.ExamResponseDTO, error)
	DeleteExam(adminID, examID uint) error
	ToggleActive(adminID, examID uint) (*dto.ExamResponseDTO, error)
	GetExam(adminID, examID uint) (*dto.ExamResponseDTO, error)
	ListExams(adminID uint) ([]dto.ExamSummaryDTO, error)
	ListResults(adminID, examID uint) ([]dto.ExamResultRowDTO, error)
}

type examService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
	now        func() time.Time
}

func NewExamService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository) ExamService {
	return &examService{examRepo: examRepo, resultRepo: resultRepo, now: time.Now}
}

func (s *examService) CreateExam(adminID uint, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error) {
	questions, totalMarks, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	exam := model.Exam{
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		Duration:       req.Duration,
		ActiveDuration: req.ActiveDuration,
		Questions:      questions,
		TotalMarks:     totalMarks,
		IsActive:       true,
		CreatedByID:    adminID,
	}

	if err := s.examRepo.Create(&exam); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		log.Error().Err(err).Msg("Failed to create exam")
		return nil, fmt.Errorf("database error creating exam: %w", err)
	}

	return s.toResponse(&exam), nil
}

func (s *examService) UpdateExam(adminID, examID uint, req dto.ExamUpdateDTO) (*dto.ExamResponseDTO, error) {
	exam, err := s.findOwned(adminID, examID)
	if err != nil {
		return nil, err
	}

	// Edits are rejected once the exam has started, and again once the
	// active window has fully elapsed. Both guards are intentional.
	now := s.now()
	if !now.Before(exam.StartTime) {
		return nil, ErrExamLocked
	}
	if now.After(exam.AvailabilityEnd()) {
		return nil, ErrExamLocked
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.StartTime != nil {
		exam.StartTime = *req.StartTime
	}
	if req.Duration != nil {
		exam.Duration = *req.Duration
	}
	if req.ActiveDuration != nil {
		exam.ActiveDuration = *req.ActiveDuration
	}

	if req.Questions != nil {
		questions, totalMarks, err := buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		// TotalMarks is re-derived whenever the question list changes.
		exam.TotalMarks = totalMarks
		if err := s.examRepo.ReplaceQuestions(exam, questions); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateTitle
			}
			log.Error().Err(err).Uint("examID", examID).Msg("Failed to replace exam questions")
			return nil, fmt.Errorf("database error updating exam: %w", err)
		}
	} else {
		if err := s.examRepo.Update(exam); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateTitle
			}
			log.Error().Err(err).Uint("examID", examID).Msg("Failed to update exam")
			return nil, fmt.Errorf("database error updating exam: %w", err)
		}
	}

	return s.toResponse(exam), nil
}

func (s *examService) DeleteExam(adminID, examID uint) error {
	if _, err := s.findOwned(adminID, examID); err != nil {
		return err
	}
	if err := s.examRepo.DeleteCascade(examID); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Failed to delete exam")
		return fmt.Errorf("database error deleting exam: %w", err)
	}
	return nil
}

func (s *examService) ToggleActive(adminID, examID uint) (*dto.ExamResponseDTO, error) {
	exam, err := s.findOwned(adminID, examID)
	if err != nil {
		return nil, err
	}
	exam.IsActive = !exam.IsActive
	if err := s.examRepo.Update(exam); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Failed to toggle exam active flag")
		return nil, fmt.Errorf("database error updating exam: %w", err)
	}
	return s.toResponse(exam), nil
}

func (s *examService) GetExam(adminID, examID uint) (*dto.ExamResponseDTO, error) {
	exam, err := s.findOwned(adminID, examID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(exam), nil
}

func (s *examService) ListExams(adminID uint) ([]dto.ExamSummaryDTO, error) {
	examsWithCount, err := s.examRepo.FindAllByOwner(adminID)
	if err != nil {
		log.Error().Err(err).Uint("adminID", adminID).Msg("Failed to list exams")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	dtos := make([]dto.ExamSummaryDTO, 0, len(examsWithCount))
	for _, ewc := range examsWithCount {
		dtos = append(dtos, dto.ExamSummaryDTO{
			ID:             ewc.Exam.ID,
			Title:          ewc.Exam.Title,
			Description:    ewc.Exam.Description,
			StartTime:      ewc.Exam.StartTime,
			Duration:       ewc.Exam.Duration,
			ActiveDuration: ewc.Exam.ActiveDuration,
			TotalMarks:     ewc.Exam.TotalMarks,
			IsActive:       ewc.Exam.IsActive,
			QuestionCount:  ewc.QuestionCount,
		})
	}
	return dtos, nil
}

func (s *examService) ListResults(adminID, examID uint) ([]dto.ExamResultRowDTO, error) {
	if _, err := s.findOwned(adminID, examID); err != nil {
		return nil, err
	}
	results, err := s.resultRepo.FindAllByExam(examID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Failed to list exam results")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}

	rows := make([]dto.ExamResultRowDTO, 0, len(results))
	for _, res := range results {
		rows = append(rows, dto.ExamResultRowDTO{
			ResultID:    res.ID,
			StudentID:   res.StudentID,
			StudentCode: res.Student.StudentID,
			StudentName: res.Student.Name,
			Status:      string(res.Status),
			TotalScore:  res.TotalScore,
			Percentage:  res.Percentage,
			SubmittedAt: res.SubmittedAt,
		})
	}
	return rows, nil
}

// findOwned loads an exam and hides it behind ErrNotFound unless it belongs
// to the calling admin.
func (s *examService) findOwned(adminID, examID uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Uint("examID", examID).Msg("Failed to load exam")
		return nil, fmt.Errorf("error fetching exam: %w", err)
	}
	if exam.CreatedByID != adminID {
		return nil, ErrNotFound
	}
	return exam, nil
}

// buildQuestions validates incoming question payloads and derives the total.
func buildQuestions(reqs []dto.QuestionCreateDTO) ([]model.Question, float64, error) {
	questions := make([]model.Question, 0, len(reqs))
	totalMarks := 0.0
	for i, qDto := range reqs {
		if len(qDto.Options) != model.OptionsPerQuestion {
			return nil, 0, fmt.Errorf("question %d must have exactly %d options, got %d", i+1, model.OptionsPerQuestion, len(qDto.Options))
		}
		if qDto.CorrectOption == nil || *qDto.CorrectOption < 0 || *qDto.CorrectOption >= model.OptionsPerQuestion {
			return nil, 0, fmt.Errorf("question %d has an out-of-range correct option", i+1)
		}
		marks := qDto.Marks
		if marks == 0 {
			marks = 1
		}
		if marks < 0 {
			return nil, 0, fmt.Errorf("question %d has negative marks", i+1)
		}

		var q model.Question
		copier.Copy(&q, &qDto)
		q.CorrectOption = *qDto.CorrectOption
		q.Marks = marks
		q.OrderInExam = i + 1
		questions = append(questions, q)
		totalMarks += marks
	}
	return questions, totalMarks, nil
}

func (s *examService) toResponse(exam *model.Exam) *dto.ExamResponseDTO {
	var resp dto.ExamResponseDTO
	if err := copier.Copy(&resp, exam); err != nil {
		log.Error().Err(err).Msg("Failed to copy Exam model to ExamResponseDTO")
	}
	return &resp
}
