package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Type enumerates the kinds of maintenance work.
type Type string

const (
	TypeInspection  Type = "inspection"
	TypeHydroTest   Type = "hydro_test"
	TypeValveRepair Type = "valve_repair"
	TypeRepainting  Type = "repainting"
	TypeRecert      Type = "recertification"
	TypeOther       Type = "other"
)

// ValidType reports whether the value is a known maintenance type.
func ValidType(t Type) bool {
	switch t {
	case TypeInspection, TypeHydroTest, TypeValveRepair, TypeRepainting, TypeRecert, TypeOther:
		return true
	default:
		return false
	}
}

// RecordStatus tracks a maintenance record through its life.
type RecordStatus string

const (
	RecordScheduled  RecordStatus = "scheduled"
	RecordInProgress RecordStatus = "in_progress"
	RecordCompleted  RecordStatus = "completed"
	RecordCancelled  RecordStatus = "cancelled"
)

// ValidRecordStatus reports whether the value is a known record status.
func ValidRecordStatus(s RecordStatus) bool {
	switch s {
	case RecordScheduled, RecordInProgress, RecordCompleted, RecordCancelled:
		return true
	default:
		return false
	}
}

// Record is a single unit of maintenance work on a cylinder. Completing an
// inspection record stamps the cylinder's inspection dates.
type Record struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	CylinderID      snowflake.ID  `gorm:"column:cylinder_id;not null;index" json:"cylinder_id"`
	MaintenanceType Type          `gorm:"column:maintenance_type;type:text;not null" json:"maintenance_type"`
	Status          RecordStatus  `gorm:"type:text;not null;index" json:"status"`
	ScheduledDate   time.Time     `gorm:"column:scheduled_date;not null;index" json:"scheduled_date"`
	CompletedDate   *time.Time    `gorm:"column:completed_date" json:"completed_date,omitempty"`
	PerformedByID   *snowflake.ID `gorm:"column:performed_by_id" json:"performed_by_id,omitempty"`
	Cost            float64       `gorm:"not null;default:0" json:"cost"`
	Description     string        `gorm:"type:text" json:"description,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "maintenance_records" }

// Schedule is a recurring maintenance plan for a cylinder.
type Schedule struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	CylinderID      snowflake.ID `gorm:"column:cylinder_id;not null;index" json:"cylinder_id"`
	MaintenanceType Type         `gorm:"column:maintenance_type;type:text;not null" json:"maintenance_type"`
	IntervalDays    int          `gorm:"column:interval_days;not null" json:"interval_days"`
	NextDueDate     time.Time    `gorm:"column:next_due_date;not null;index" json:"next_due_date"`
	IsActive        bool         `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Schedule) TableName() string { return "maintenance_schedules" }
