package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/movement/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

// Provide returns the gorm-backed movement repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, movement *domain.Movement) error {
	return db.WithContext(ctx).Create(movement).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Movement, error) {
	var movement domain.Movement
	err := db.WithContext(ctx).Where("id = ?", id).First(&movement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movement, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListMovementsRequest) ([]domain.Movement, error) {
	stmt := db.WithContext(ctx).Model(&domain.Movement{})
	if req.CylinderID != nil {
		stmt = stmt.Where("cylinder_id = ?", *req.CylinderID)
	}
	if req.CustomerID != nil {
		stmt = stmt.Where("customer_id = ?", *req.CustomerID)
	}
	if req.Type != "" {
		stmt = stmt.Where("movement_type = ?", req.Type)
	}
	if req.From != nil {
		stmt = stmt.Where("movement_date >= ?", *req.From)
	}
	if req.To != nil {
		stmt = stmt.Where("movement_date <= ?", *req.To)
	}

	page := pagination.Pagination{Skip: req.Skip, Limit: req.Limit}

	var movements []domain.Movement
	if err := page.Apply(stmt).Order("movement_date desc, id desc").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
