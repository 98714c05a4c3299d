package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

type PageGormRepository struct {
	db *gorm.DB
}

func NewPageGormRepository(db *gorm.DB) *PageGormRepository {
	return &PageGormRepository{db: db}
}

func (r *PageGormRepository) GetPageBySlug(
	ctx context.Context,
	slug string,
) (*models.Page, error) {

	var page models.Page
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("slug = ?", slug).
		First(&page).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("page", slug)
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

var _ domain.PageReader = (*PageGormRepository)(nil)
