package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditRecord is an append-only trail entry for privileged actions.
type AuditRecord struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorID    *snowflake.ID     `gorm:"column:actor_id;index" json:"actor_id,omitempty"`
	Action     string            `gorm:"type:text;not null;index" json:"action"`
	TargetType string            `gorm:"column:target_type;type:text;not null" json:"target_type"`
	TargetID   *string           `gorm:"column:target_id;type:text" json:"target_id,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AuditRecord) TableName() string { return "audit_records" }

// Entry is the write-side shape accepted from callers.
type Entry struct {
	ActorID    *snowflake.ID
	Action     string
	TargetType string
	TargetID   *string
	Metadata   map[string]any
}

type ListRequest struct {
	Skip   int
	Limit  int
	Action string
}

type Service interface {
	Log(ctx context.Context, entry Entry) error
	List(ctx context.Context, req ListRequest) ([]AuditRecord, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *AuditRecord) error
	List(ctx context.Context, db *gorm.DB, req ListRequest) ([]AuditRecord, error)
}
