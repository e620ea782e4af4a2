package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// ViolationsPerExamThreshold: reaching this many violations within one
	// exam counts one strike against the lifetime counter.
	ViolationsPerExamThreshold = 3
	// LifetimeViolationThreshold: this many strikes blocks the account.
	LifetimeViolationThreshold = 3

	securityBlockReason = "blocked after repeated security violations"
)

// ViolationService records proctoring violations and applies the monotonic
// escalation: per-exam threshold increments the lifetime counter, lifetime
// threshold blocks the account. There is no unblock path here; that is a
// manual admin action.
type ViolationService interface {
	ReportViolation(studentID, examID uint, req dto.ViolationReportDTO) (*dto.ViolationAckDTO, error)
}

type violationService struct {
	violationRepo repository.ViolationRepository
	studentRepo   repository.StudentRepository
	examRepo      repository.ExamRepository
}

func NewViolationService(
	violationRepo repository.ViolationRepository,
	studentRepo repository.StudentRepository,
	examRepo repository.ExamRepository,
) ViolationService {
	return &violationService{violationRepo: violationRepo, studentRepo: studentRepo, examRepo: examRepo}
}

func (s *violationService) ReportViolation(studentID, examID uint, req dto.ViolationReportDTO) (*dto.ViolationAckDTO, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching exam: %w", err)
	}

	event := model.ViolationEvent{
		ExamID:      examID,
		StudentID:   studentID,
		Type:        req.Type,
		OccurredAt:  req.Timestamp,
		CountInExam: req.Count,
	}
	if err := s.violationRepo.Create(&event); err != nil {
		log.Error().Err(err).Uint("examID", examID).Uint("studentID", studentID).Msg("Failed to record violation")
		return nil, fmt.Errorf("database error recording violation: %w", err)
	}

	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching student: %w", err)
	}

	ack := &dto.ViolationAckDTO{Recorded: true}

	// Escalate exactly once per exam, when the reported in-exam count first
	// reaches the threshold.
	if req.Count == ViolationsPerExamThreshold {
		student.SecurityViolations++
		if student.SecurityViolations >= LifetimeViolationThreshold && !student.IsBlocked {
			now := event.OccurredAt
			reason := securityBlockReason
			student.IsBlocked = true
			student.BlockedReason = &reason
			student.BlockedAt = &now
			log.Warn().
				Uint("studentID", studentID).
				Int("lifetimeViolations", student.SecurityViolations).
				Msg("Student blocked after repeated security violations")
		}
		if err := s.studentRepo.Update(student); err != nil {
			log.Error().Err(err).Uint("studentID", studentID).Msg("Failed to persist violation escalation")
			return nil, fmt.Errorf("database error updating student: %w", err)
		}
	}

	ack.LifetimeViolations = student.SecurityViolations
	ack.StudentBlocked = student.IsBlocked
	return ack, nil
}
