package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertRecord(ctx context.Context, db *gorm.DB, record *Record) error
	FindRecordByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Record, error)
	ListRecords(ctx context.Context, db *gorm.DB, req ListRecordsRequest) ([]Record, error)
	UpdateRecord(ctx context.Context, db *gorm.DB, record *Record) error

	// ListScheduledBetween returns records still in the scheduled state whose
	// date falls inside [from, to).
	ListScheduledBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Record, error)

	// ListScheduledBefore returns records still in the scheduled state whose
	// date is before the cutoff.
	ListScheduledBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) ([]Record, error)

	InsertSchedule(ctx context.Context, db *gorm.DB, schedule *Schedule) error
	ListSchedules(ctx context.Context, db *gorm.DB, cylinderID *snowflake.ID) ([]Schedule, error)

	// FindActiveSchedule returns the active recurring schedule for the
	// cylinder and maintenance type, or nil when none exists.
	FindActiveSchedule(ctx context.Context, db *gorm.DB, cylinderID snowflake.ID, maintenanceType Type) (*Schedule, error)
	UpdateSchedule(ctx context.Context, db *gorm.DB, schedule *Schedule) error
}
