package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound        = errors.New("cylinder_not_found")
	ErrInvalidSerial   = errors.New("invalid_serial_number")
	ErrInvalidBarcode  = errors.New("invalid_barcode")
	ErrInvalidGasType  = errors.New("invalid_gas_type")
	ErrInvalidCapacity = errors.New("invalid_capacity")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_cylinder_id")
	ErrSerialTaken     = errors.New("serial_number_taken")
	ErrBarcodeTaken    = errors.New("barcode_taken")
	ErrUnknownLocation = errors.New("unknown_location")
)

// CreateCylinderRequest carries the fields accepted when registering a
// cylinder. Status defaults to in_service when empty.
type CreateCylinderRequest struct {
	SerialNumber string  `json:"serial_number"`
	Barcode      string  `json:"barcode"`
	GasType      GasType `json:"gas_type"`
	Capacity     float64 `json:"capacity"`
	PressureRate float64 `json:"pressure_rating"`
	TareWeight   float64 `json:"tare_weight"`
	Status       Status  `json:"status"`

	CurrentLocationID *snowflake.ID `json:"current_location_id"`

	ManufactureDate    *time.Time `json:"manufacture_date"`
	LastInspectionDate *time.Time `json:"last_inspection_date"`
	NextInspectionDate *time.Time `json:"next_inspection_date"`
	LastHydroTestDate  *time.Time `json:"last_hydro_test_date"`
	NextHydroTestDate  *time.Time `json:"next_hydro_test_date"`
}

// CylinderPatch carries optional replacements for mutable fields.
type CylinderPatch struct {
	GasType      *GasType `json:"gas_type"`
	Capacity     *float64 `json:"capacity"`
	PressureRate *float64 `json:"pressure_rating"`
	TareWeight   *float64 `json:"tare_weight"`
	Status       *Status  `json:"status"`

	CurrentLocationID *snowflake.ID `json:"current_location_id"`
	CurrentCustomerID *snowflake.ID `json:"current_customer_id"`

	LastInspectionDate *time.Time `json:"last_inspection_date"`
	NextInspectionDate *time.Time `json:"next_inspection_date"`
	LastHydroTestDate  *time.Time `json:"last_hydro_test_date"`
	NextHydroTestDate  *time.Time `json:"next_hydro_test_date"`
}

// ListCylindersRequest filters and paginates the cylinder collection.
type ListCylindersRequest struct {
	Skip       int
	Limit      int
	Status     Status
	GasType    GasType
	LocationID *snowflake.ID
	CustomerID *snowflake.ID
}

type Service interface {
	Create(ctx context.Context, req CreateCylinderRequest) (*Cylinder, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Cylinder, error)

	// Search resolves an arbitrary identifier against id, serial number,
	// then barcode, returning the first match.
	Search(ctx context.Context, identifier string) (*Cylinder, error)

	List(ctx context.Context, req ListCylindersRequest) ([]Cylinder, error)
	Update(ctx context.Context, id snowflake.ID, patch CylinderPatch) (*Cylinder, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
