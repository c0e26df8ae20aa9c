package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/maintenance/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

// Provide returns the gorm-backed maintenance repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertRecord(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindRecordByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Record, error) {
	var record domain.Record
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) ListRecords(ctx context.Context, db *gorm.DB, req domain.ListRecordsRequest) ([]domain.Record, error) {
	stmt := db.WithContext(ctx).Model(&domain.Record{})
	if req.CylinderID != nil {
		stmt = stmt.Where("cylinder_id = ?", *req.CylinderID)
	}
	if req.Type != "" {
		stmt = stmt.Where("maintenance_type = ?", req.Type)
	}
	if req.Status != "" {
		stmt = stmt.Where("status = ?", req.Status)
	}

	page := pagination.Pagination{Skip: req.Skip, Limit: req.Limit}

	var records []domain.Record
	if err := page.Apply(stmt).Order("scheduled_date desc, id desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) UpdateRecord(ctx context.Context, db *gorm.DB, record *domain.Record) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *repo) ListScheduledBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.Record, error) {
	var records []domain.Record
	err := db.WithContext(ctx).
		Where("status = ?", domain.RecordScheduled).
		Where("scheduled_date >= ? AND scheduled_date < ?", from, to).
		Order("scheduled_date asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListScheduledBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]domain.Record, error) {
	var records []domain.Record
	err := db.WithContext(ctx).
		Where("status = ?", domain.RecordScheduled).
		Where("scheduled_date < ?", cutoff).
		Order("scheduled_date asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) InsertSchedule(ctx context.Context, db *gorm.DB, schedule *domain.Schedule) error {
	return db.WithContext(ctx).Create(schedule).Error
}

func (r *repo) ListSchedules(ctx context.Context, db *gorm.DB, cylinderID *snowflake.ID) ([]domain.Schedule, error) {
	stmt := db.WithContext(ctx).Model(&domain.Schedule{})
	if cylinderID != nil {
		stmt = stmt.Where("cylinder_id = ?", *cylinderID)
	}

	var schedules []domain.Schedule
	if err := stmt.Order("next_due_date asc, id asc").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *repo) FindActiveSchedule(ctx context.Context, db *gorm.DB, cylinderID snowflake.ID, maintenanceType domain.Type) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := db.WithContext(ctx).
		Where("cylinder_id = ?", cylinderID).
		Where("maintenance_type = ?", maintenanceType).
		Where("is_active = ?", true).
		First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *repo) UpdateSchedule(ctx context.Context, db *gorm.DB, schedule *domain.Schedule) error {
	return db.WithContext(ctx).Save(schedule).Error
}
