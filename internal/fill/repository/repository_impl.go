package repository

import (
	"context"

	"github.com/gastrak/gastrak/internal/fill/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

// Provide returns the gorm-backed fill repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.FillRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListFillsRequest) ([]domain.FillRecord, error) {
	stmt := db.WithContext(ctx).Model(&domain.FillRecord{})
	if req.CylinderID != nil {
		stmt = stmt.Where("cylinder_id = ?", *req.CylinderID)
	}
	if req.From != nil {
		stmt = stmt.Where("fill_date >= ?", *req.From)
	}
	if req.To != nil {
		stmt = stmt.Where("fill_date <= ?", *req.To)
	}

	page := pagination.Pagination{Skip: req.Skip, Limit: req.Limit}

	var records []domain.FillRecord
	if err := page.Apply(stmt).Order("fill_date desc, id desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
