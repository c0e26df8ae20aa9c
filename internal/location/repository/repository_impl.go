package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/location/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, location *domain.Location) error {
	return db.WithContext(ctx).Create(location).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Location, error) {
	var location domain.Location
	err := db.WithContext(ctx).Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListLocationsRequest, page pagination.Pagination) ([]domain.Location, error) {
	stmt := db.WithContext(ctx).Model(&domain.Location{})
	if req.CustomerID != nil {
		stmt = stmt.Where("customer_id = ?", *req.CustomerID)
	}
	if req.Type != "" {
		stmt = stmt.Where("type = ?", req.Type)
	}
	var locations []domain.Location
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, location *domain.Location) error {
	return db.WithContext(ctx).Save(location).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Location{}).Error
}
