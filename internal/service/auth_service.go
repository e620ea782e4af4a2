package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/Procyon/config"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/middleware"
	"github.com/lshigami/Procyon/internal/model"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	LoginAdmin(req dto.AdminLoginDTO) (*dto.LoginResponseDTO, error)
	LoginStudent(req dto.StudentLoginDTO) (*dto.LoginResponseDTO, error)
}

type authService struct {
	adminRepo   repository.AdminRepository
	studentRepo repository.StudentRepository
	cfg         *config.Config
}

func NewAuthService(adminRepo repository.AdminRepository, studentRepo repository.StudentRepository, cfg *config.Config) AuthService {
	return &authService{adminRepo: adminRepo, studentRepo: studentRepo, cfg: cfg}
}

func (s *authService) LoginAdmin(req dto.AdminLoginDTO) (*dto.LoginResponseDTO, error) {
	admin, err := s.adminRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("LoginAdmin: lookup failed")
		return nil, fmt.Errorf("error looking up admin: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(admin.ID, middleware.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponseDTO{
		User: dto.AdminInfoDTO{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  middleware.RoleAdmin,
		},
		Token: token,
	}, nil
}

func (s *authService) LoginStudent(req dto.StudentLoginDTO) (*dto.LoginResponseDTO, error) {
	student, err := s.studentRepo.FindByStudentID(req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("LoginStudent: lookup failed")
		return nil, fmt.Errorf("error looking up student: %w", err)
	}

	// A blocked account is rejected before any password check.
	if student.IsBlocked {
		return nil, ErrStudentBlocked
	}

	if !s.studentPasswordMatches(student, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(student.ID, middleware.RoleStudent)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponseDTO{
		User: dto.StudentInfoDTO{
			ID:        student.ID,
			StudentID: student.StudentID,
			Name:      student.Name,
			Email:     student.Email,
			Role:      middleware.RoleStudent,
		},
		Token: token,
	}, nil
}

// studentPasswordMatches accepts the permanent password or an unexpired
// temporary exam password.
func (s *authService) studentPasswordMatches(student *model.Student, password string) bool {
	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)) == nil {
		return true
	}
	if student.TempExamPassword == nil || student.TempPasswordExpiry == nil {
		return false
	}
	if time.Now().After(*student.TempPasswordExpiry) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*student.TempExamPassword), []byte(password)) == nil
}

func (s *authService) signToken(userID uint, role string) (string, error) {
	now := time.Now()
	claims := middleware.AuthClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign token")
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}
