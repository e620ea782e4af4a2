package repository

import (
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.Result) error
	Update(result *model.Result) error
	FindByExamAndStudent(examID, studentID uint) (*model.Result, error)
	FindAllByExam(examID uint) ([]model.Result, error)
	CountCompleted() (int64, error)
	AveragePercentage() (float64, error)
	TopPerformers(limit int) ([]dto.TopPerformerDTO, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) Update(result *model.Result) error {
	return r.db.Save(result).Error
}

func (r *resultRepository) FindByExamAndStudent(examID, studentID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.Where("exam_id = ? AND student_id = ?", examID, studentID).First(&result).Error
	return &result, err
}

func (r *resultRepository) FindAllByExam(examID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Preload("Student").
		Where("exam_id = ?", examID).
		Order("total_score DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&model.Result{}).Where("status = ?", model.ResultCompleted).Count(&count).Error
	return count, err
}

func (r *resultRepository) AveragePercentage() (float64, error) {
	var avg *float64
	err := r.db.Model(&model.Result{}).
		Where("status = ?", model.ResultCompleted).
		Select("AVG(percentage)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *resultRepository) TopPerformers(limit int) ([]dto.TopPerformerDTO, error) {
	var rows []dto.TopPerformerDTO
	err := r.db.Model(&model.Result{}).
		Select("students.student_id AS student_code, students.name AS student_name, COUNT(results.id) AS exams_taken, AVG(results.percentage) AS average_percentage").
		Joins("JOIN students ON students.id = results.student_id").
		Where("results.status = ?", model.ResultCompleted).
		Group("students.id, students.student_id, students.name").
		Order("average_percentage DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
