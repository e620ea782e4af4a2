package repository

import (
	"github.com/lshigami/Procyon/internal/model"
	"gorm.io/gorm"
)

// ViolationRepository is insert-only; events are an audit trail.
type ViolationRepository interface {
	Create(event *model.ViolationEvent) error
}

type violationRepository struct {
	db *gorm.DB
}

func NewViolationRepository(db *gorm.DB) ViolationRepository {
	return &violationRepository{db: db}
}

func (r *violationRepository) Create(event *model.ViolationEvent) error {
	return r.db.Create(event).Error
}
