package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound         = errors.New("maintenance_not_found")
	ErrScheduleNotFound = errors.New("maintenance_schedule_not_found")
	ErrInvalidType      = errors.New("invalid_maintenance_type")
	ErrInvalidStatus    = errors.New("invalid_maintenance_status")
	ErrInvalidInterval  = errors.New("invalid_maintenance_interval")
	ErrInvalidID        = errors.New("invalid_maintenance_id")
	ErrUnknownCylinder  = errors.New("unknown_cylinder")
	ErrAlreadyCompleted = errors.New("maintenance_already_completed")
)

// InspectionIntervalDays is the projection applied to a cylinder's next
// inspection date when an inspection record completes.
const InspectionIntervalDays = 365

// CreateRecordRequest carries the fields accepted when scheduling work.
type CreateRecordRequest struct {
	CylinderID      snowflake.ID `json:"cylinder_id"`
	MaintenanceType Type         `json:"maintenance_type"`
	ScheduledDate   time.Time    `json:"scheduled_date"`
	Cost            float64      `json:"cost"`
	Description     string       `json:"description"`
	Notes           string       `json:"notes"`
}

// RecordPatch carries optional replacements for mutable record fields.
type RecordPatch struct {
	Status        *RecordStatus `json:"status"`
	ScheduledDate *time.Time    `json:"scheduled_date"`
	Cost          *float64      `json:"cost"`
	Description   *string       `json:"description"`
	Notes         *string       `json:"notes"`
}

// CompleteRecordRequest carries the completion payload.
type CompleteRecordRequest struct {
	PerformedByID snowflake.ID `json:"-"`
	CompletedDate *time.Time   `json:"completed_date"`
	Cost          *float64     `json:"cost"`
	Notes         string       `json:"notes"`
}

// CreateScheduleRequest carries the fields accepted when creating a plan.
type CreateScheduleRequest struct {
	CylinderID      snowflake.ID `json:"cylinder_id"`
	MaintenanceType Type         `json:"maintenance_type"`
	IntervalDays    int          `json:"interval_days"`
	NextDueDate     time.Time    `json:"next_due_date"`
}

// ListRecordsRequest filters and paginates maintenance records.
type ListRecordsRequest struct {
	Skip       int
	Limit      int
	CylinderID *snowflake.ID
	Type       Type
	Status     RecordStatus
}

type Service interface {
	CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error)
	GetRecord(ctx context.Context, id snowflake.ID) (*Record, error)
	ListRecords(ctx context.Context, req ListRecordsRequest) ([]Record, error)
	UpdateRecord(ctx context.Context, id snowflake.ID, patch RecordPatch) (*Record, error)

	// CompleteRecord marks the record completed and, for inspection work,
	// stamps the cylinder's last and next inspection dates. A record may be
	// completed once.
	CompleteRecord(ctx context.Context, id snowflake.ID, req CompleteRecordRequest) (*Record, error)

	// Upcoming returns scheduled records due within the given number of days.
	Upcoming(ctx context.Context, days int) ([]Record, error)

	// Overdue returns scheduled records whose date has passed without
	// completion.
	Overdue(ctx context.Context) ([]Record, error)

	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error)
	ListSchedules(ctx context.Context, cylinderID *snowflake.ID) ([]Schedule, error)
}
