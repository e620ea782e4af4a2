package repository

import (
	"github.com/lshigami/Procyon/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	Update(exam *model.Exam) error
	// ReplaceQuestions swaps the exam's question list wholesale and persists
	// the exam row (total marks included) in one transaction.
	ReplaceQuestions(exam *model.Exam, questions []model.Question) error
	// DeleteCascade hard-deletes the exam together with its questions,
	// results and attempted-student links.
	DeleteCascade(examID uint) error
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithQuestions(id uint) (*model.Exam, error)
	FindAllByOwner(adminID uint) ([]struct {
		model.Exam
		QuestionCount int
	}, error)
	FindAllActive() ([]struct {
		model.Exam
		QuestionCount int
	}, error)
	FindRecentActive(limit int) ([]model.Exam, error)
	AddAttemptedStudent(examID, studentID uint) error
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// Create with associations also persists exam.Questions.
	return r.db.Create(exam).Error
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) ReplaceQuestions(exam *model.Exam, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("exam_id = ?", exam.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExamID = exam.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		exam.Questions = questions
		return tx.Omit("Questions", "StudentsAttempted").Save(exam).Error
	})
}

func (r *examRepository) DeleteCascade(examID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("exam_id = ?", examID).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("exam_id = ?", examID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM exam_attempted_students WHERE exam_id = ?", examID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Exam{}, examID).Error
	})
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.First(&exam, id).Error
	return &exam, err
}

func (r *examRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_exam ASC")
	}).First(&exam, id).Error
	return &exam, err
}

func (r *examRepository) FindAllByOwner(adminID uint) ([]struct {
	model.Exam
	QuestionCount int
}, error) {
	var results []struct {
		model.Exam
		QuestionCount int
	}
	err := r.db.Model(&model.Exam{}).
		Select("exams.*, (SELECT COUNT(*) FROM questions WHERE questions.exam_id = exams.id AND questions.deleted_at IS NULL) as question_count").
		Where("exams.created_by_id = ? AND exams.deleted_at IS NULL", adminID).
		Order("exams.start_time DESC").
		Scan(&results).Error
	return results, err
}

func (r *examRepository) FindAllActive() ([]struct {
	model.Exam
	QuestionCount int
}, error) {
	var results []struct {
		model.Exam
		QuestionCount int
	}
	err := r.db.Model(&model.Exam{}).
		Select("exams.*, (SELECT COUNT(*) FROM questions WHERE questions.exam_id = exams.id AND questions.deleted_at IS NULL) as question_count").
		Where("exams.is_active = ? AND exams.deleted_at IS NULL", true).
		Order("exams.start_time ASC").
		Scan(&results).Error
	return results, err
}

func (r *examRepository) FindRecentActive(limit int) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Where("is_active = ?", true).
		Order("start_time DESC").
		Limit(limit).
		Find(&exams).Error
	return exams, err
}

func (r *examRepository) AddAttemptedStudent(examID, studentID uint) error {
	return r.db.Model(&model.Exam{ID: examID}).
		Association("StudentsAttempted").
		Append(&model.Student{ID: studentID})
}
