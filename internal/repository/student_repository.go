package repository

import (
	"strings"

	"github.com/lshigami/Procyon/internal/model"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(student *model.Student) error
	CreateBatch(students []model.Student) error
	Update(student *model.Student) error
	FindByID(id uint) (*model.Student, error)
	FindByStudentID(studentID string) (*model.Student, error)
	FindByIDs(ids []uint) ([]model.Student, error)
	FindAllByOwner(adminID uint) ([]model.Student, error)
	// ExistingEmailsLower returns the set of already-registered emails,
	// lowercased, for case-insensitive import deduplication.
	ExistingEmailsLower() (map[string]bool, error)
	ExistingStudentIDs() (map[string]bool, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *model.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) CreateBatch(students []model.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.CreateInBatches(students, 100).Error
}

func (r *studentRepository) Update(student *model.Student) error {
	return r.db.Save(student).Error
}

func (r *studentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.First(&student, id).Error
	return &student, err
}

func (r *studentRepository) FindByStudentID(studentID string) (*model.Student, error) {
	var student model.Student
	err := r.db.Where("student_id = ?", studentID).First(&student).Error
	return &student, err
}

func (r *studentRepository) FindByIDs(ids []uint) ([]model.Student, error) {
	var students []model.Student
	err := r.db.Where("id IN ?", ids).Find(&students).Error
	return students, err
}

func (r *studentRepository) FindAllByOwner(adminID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.db.Where("created_by_id = ?", adminID).Order("created_at DESC").Find(&students).Error
	return students, err
}

func (r *studentRepository) ExistingEmailsLower() (map[string]bool, error) {
	var emails []string
	if err := r.db.Model(&model.Student{}).Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(emails))
	for _, e := range emails {
		set[strings.ToLower(e)] = true
	}
	return set, nil
}

func (r *studentRepository) ExistingStudentIDs() (map[string]bool, error) {
	var ids []string
	if err := r.db.Model(&model.Student{}).Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
