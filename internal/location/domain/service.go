package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidName     = errors.New("invalid_location_name")
	ErrInvalidType     = errors.New("invalid_location_type")
	ErrNotFound        = errors.New("location_not_found")
	ErrUnknownCustomer = errors.New("location_unknown_customer")
)

type CreateLocationRequest struct {
	CustomerID *snowflake.ID
	Name       string
	Type       LocationType
	Address    string
	City       string
	State      string
	ZipCode    string
	Country    string
	IsPrimary  bool
}

// LocationPatch enumerates the mutable fields. Nil means "leave unchanged".
type LocationPatch struct {
	Name      *string
	Type      *LocationType
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	Country   *string
	IsPrimary *bool
}

type ListLocationsRequest struct {
	Skip       int
	Limit      int
	CustomerID *snowflake.ID
	Type       LocationType
}

type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (Location, error)
	List(ctx context.Context, req ListLocationsRequest) ([]Location, error)
	GetByID(ctx context.Context, id snowflake.ID) (Location, error)
	Update(ctx context.Context, id snowflake.ID, patch LocationPatch) (Location, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
