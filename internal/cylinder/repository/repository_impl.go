package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/cylinder/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

// Provide returns the gorm-backed cylinder repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, cylinder *domain.Cylinder) error {
	return db.WithContext(ctx).Create(cylinder).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Cylinder, error) {
	var cylinder domain.Cylinder
	err := db.WithContext(ctx).Where("id = ?", id).First(&cylinder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cylinder, nil
}

func (r *repo) FindBySerial(ctx context.Context, db *gorm.DB, serial string) (*domain.Cylinder, error) {
	var cylinder domain.Cylinder
	err := db.WithContext(ctx).Where("serial_number = ?", serial).First(&cylinder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cylinder, nil
}

func (r *repo) FindByBarcode(ctx context.Context, db *gorm.DB, barcode string) (*domain.Cylinder, error) {
	var cylinder domain.Cylinder
	err := db.WithContext(ctx).Where("barcode = ?", barcode).First(&cylinder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cylinder, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListCylindersRequest) ([]domain.Cylinder, error) {
	stmt := db.WithContext(ctx).Model(&domain.Cylinder{})
	if req.Status != "" {
		stmt = stmt.Where("status = ?", req.Status)
	}
	if req.GasType != "" {
		stmt = stmt.Where("gas_type = ?", req.GasType)
	}
	if req.LocationID != nil {
		stmt = stmt.Where("current_location_id = ?", *req.LocationID)
	}
	if req.CustomerID != nil {
		stmt = stmt.Where("current_customer_id = ?", *req.CustomerID)
	}

	page := pagination.Pagination{Skip: req.Skip, Limit: req.Limit}

	var cylinders []domain.Cylinder
	if err := page.Apply(stmt).Order("created_at desc, id desc").Find(&cylinders).Error; err != nil {
		return nil, err
	}
	return cylinders, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, cylinder *domain.Cylinder) error {
	return db.WithContext(ctx).Save(cylinder).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Cylinder{}).Error
}
