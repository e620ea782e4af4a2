package service

import (
	"fmt"

	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	recentExamLimit   = 10
	topPerformerLimit = 5
)

// StatsService backs the unauthenticated landing-page endpoints.
type StatsService interface {
	RecentExams() ([]dto.RecentExamDTO, error)
	TopPerformers() ([]dto.TopPerformerDTO, error)
	PlatformStats() (*dto.PlatformStatsDTO, error)
}

type statsService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
	db         *gorm.DB
}

func NewStatsService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository, db *gorm.DB) StatsService {
	return &statsService{examRepo: examRepo, resultRepo: resultRepo, db: db}
}

func (s *statsService) RecentExams() ([]dto.RecentExamDTO, error) {
	exams, err := s.examRepo.FindRecentActive(recentExamLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch recent exams")
		return nil, fmt.Errorf("error fetching recent exams: %w", err)
	}
	out := make([]dto.RecentExamDTO, 0, len(exams))
	for _, exam := range exams {
		out = append(out, dto.RecentExamDTO{
			ID:        exam.ID,
			Title:     exam.Title,
			StartTime: exam.StartTime,
			Duration:  exam.Duration,
		})
	}
	return out, nil
}

func (s *statsService) TopPerformers() ([]dto.TopPerformerDTO, error) {
	rows, err := s.resultRepo.TopPerformers(topPerformerLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch top performers")
		return nil, fmt.Errorf("error fetching leaderboard: %w", err)
	}
	return rows, nil
}

func (s *statsService) PlatformStats() (*dto.PlatformStatsDTO, error) {
	stats := &dto.PlatformStatsDTO{}

	if err := s.db.Table("exams").Where("deleted_at IS NULL").Count(&stats.TotalExams).Error; err != nil {
		return nil, fmt.Errorf("error counting exams: %w", err)
	}
	if err := s.db.Table("students").Where("deleted_at IS NULL").Count(&stats.TotalStudents).Error; err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	completed, err := s.resultRepo.CountCompleted()
	if err != nil {
		return nil, fmt.Errorf("error counting submissions: %w", err)
	}
	stats.TotalSubmissions = completed

	avg, err := s.resultRepo.AveragePercentage()
	if err != nil {
		return nil, fmt.Errorf("error computing average: %w", err)
	}
	stats.AveragePercentage = avg

	return stats, nil
}
