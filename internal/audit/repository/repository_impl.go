package repository

import (
	"context"

	"github.com/gastrak/gastrak/internal/audit/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.AuditRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListRequest) ([]domain.AuditRecord, error) {
	stmt := db.WithContext(ctx).Model(&domain.AuditRecord{})
	if req.Action != "" {
		stmt = stmt.Where("action = ?", req.Action)
	}
	var records []domain.AuditRecord
	page := pagination.Pagination{Skip: req.Skip, Limit: req.Limit}
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
