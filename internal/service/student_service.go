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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const manualBlockReason = "blocked by administrator"

// StudentService is the admin-facing student account management.
type StudentService interface {
	CreateStudent(adminID uint, req dto.StudentCreateDTO) (*dto.StudentResponseDTO, error)
	ListStudents(adminID uint) ([]dto.StudentResponseDTO, error)
	ToggleBlock(adminID, studentID uint) (*dto.StudentResponseDTO, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
}

func NewStudentService(studentRepo repository.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

func (s *studentService) CreateStudent(adminID uint, req dto.StudentCreateDTO) (*dto.StudentResponseDTO, error) {
	password := req.Password
	if password == "" {
		password = req.StudentID
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash student password")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := model.Student{
		StudentID:   req.StudentID,
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hash),
		CreatedByID: adminID,
	}
	if err := s.studentRepo.Create(&student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: student id or email already exists", ErrDuplicateTitle)
		}
		log.Error().Err(err).Msg("Failed to create student")
		return nil, fmt.Errorf("database error creating student: %w", err)
	}

	return toStudentResponse(&student), nil
}

func (s *studentService) ListStudents(adminID uint) ([]dto.StudentResponseDTO, error) {
	students, err := s.studentRepo.FindAllByOwner(adminID)
	if err != nil {
		log.Error().Err(err).Uint("adminID", adminID).Msg("Failed to list students")
		return nil, fmt.Errorf("error fetching students: %w", err)
	}
	dtos := make([]dto.StudentResponseDTO, 0, len(students))
	for i := range students {
		dtos = append(dtos, *toStudentResponse(&students[i]))
	}
	return dtos, nil
}

func (s *studentService) ToggleBlock(adminID, studentID uint) (*dto.StudentResponseDTO, error) {
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Uint("studentID", studentID).Msg("Failed to load student")
		return nil, fmt.Errorf("error fetching student: %w", err)
	}
	if student.CreatedByID != adminID {
		return nil, ErrNotFound
	}

	if student.IsBlocked {
		student.IsBlocked = false
		student.BlockedReason = nil
		student.BlockedAt = nil
	} else {
		now := time.Now()
		reason := manualBlockReason
		student.IsBlocked = true
		student.BlockedReason = &reason
		student.BlockedAt = &now
	}

	if err := s.studentRepo.Update(student); err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("Failed to toggle block flag")
		return nil, fmt.Errorf("database error updating student: %w", err)
	}
	return toStudentResponse(student), nil
}

func toStudentResponse(student *model.Student) *dto.StudentResponseDTO {
	var resp dto.StudentResponseDTO
	if err := copier.Copy(&resp, student); err != nil {
		log.Error().Err(err).Msg("Failed to copy Student model to StudentResponseDTO")
	}
	return &resp
}
