package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound        = errors.New("movement_not_found")
	ErrInvalidType     = errors.New("invalid_movement_type")
	ErrInvalidID       = errors.New("invalid_movement_id")
	ErrUnknownCylinder = errors.New("unknown_cylinder")
	ErrUnknownLocation = errors.New("unknown_location")
	ErrUnknownCustomer = errors.New("unknown_customer")
	ErrCylinderRetired = errors.New("cylinder_retired")
)

// RecordMovementRequest carries the fields accepted when recording a
// movement. MovementDate defaults to now when zero.
type RecordMovementRequest struct {
	CylinderID     snowflake.ID  `json:"cylinder_id"`
	MovementType   Type          `json:"movement_type"`
	FromLocationID *snowflake.ID `json:"from_location_id"`
	ToLocationID   snowflake.ID  `json:"to_location_id"`
	CustomerID     *snowflake.ID `json:"customer_id"`
	MovedByID      snowflake.ID  `json:"-"`
	MovementDate   time.Time     `json:"movement_date"`
	Notes          string        `json:"notes"`
}

// ListMovementsRequest filters and paginates the movement history.
type ListMovementsRequest struct {
	Skip       int
	Limit      int
	CylinderID *snowflake.ID
	CustomerID *snowflake.ID
	Type       Type
	From       *time.Time
	To         *time.Time
}

type Service interface {
	Record(ctx context.Context, req RecordMovementRequest) (*Movement, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Movement, error)
	List(ctx context.Context, req ListMovementsRequest) ([]Movement, error)
}
