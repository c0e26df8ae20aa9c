package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound        = errors.New("fill_not_found")
	ErrInvalidID       = errors.New("invalid_fill_id")
	ErrUnknownCylinder = errors.New("unknown_cylinder")
	ErrUnknownLocation = errors.New("unknown_location")
	ErrCylinderRetired = errors.New("cylinder_retired")
)

// RecordFillRequest carries the fields accepted when logging a fill.
type RecordFillRequest struct {
	CylinderID   snowflake.ID  `json:"cylinder_id"`
	LocationID   *snowflake.ID `json:"location_id"`
	FilledByID   snowflake.ID  `json:"-"`
	FillDate     time.Time     `json:"fill_date"`
	FillPressure float64       `json:"fill_pressure"`
	FillWeight   float64       `json:"fill_weight"`
	Notes        string        `json:"notes"`
}

// ListFillsRequest filters and paginates the fill log.
type ListFillsRequest struct {
	Skip       int
	Limit      int
	CylinderID *snowflake.ID
	From       *time.Time
	To         *time.Time
}

type Service interface {
	Record(ctx context.Context, req RecordFillRequest) (*FillRecord, error)
	List(ctx context.Context, req ListFillsRequest) ([]FillRecord, error)
}
