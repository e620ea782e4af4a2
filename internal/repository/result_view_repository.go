package repository

import (
	"github.com/lshigami/Procyon/internal/model"
	"gorm.io/gorm"
)

// ResultViewRepository is insert-only; views are an audit trail.
type ResultViewRepository interface {
	Create(view *model.ResultView) error
}

type resultViewRepository struct {
	db *gorm.DB
}

func NewResultViewRepository(db *gorm.DB) ResultViewRepository {
	return &resultViewRepository{db: db}
}

func (r *resultViewRepository) Create(view *model.ResultView) error {
	return r.db.Create(view).Error
}
