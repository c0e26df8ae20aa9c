package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("customer_not_found")
	ErrEmailTaken   = errors.New("customer_email_taken")
)

type CreateCustomerRequest struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	Country      string
	BusinessType string
	TaxID        string
	CreditLimit  float64
	PaymentTerms string
}

// CustomerPatch enumerates the mutable fields. Nil means "leave unchanged".
type CustomerPatch struct {
	Name         *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	Country      *string
	BusinessType *string
	TaxID        *string
	CreditLimit  *float64
	PaymentTerms *string
	IsActive     *bool
}

type ListCustomersRequest struct {
	Skip   int
	Limit  int
	Name   string
	Active *bool
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	List(ctx context.Context, req ListCustomersRequest) ([]Customer, error)
	GetByID(ctx context.Context, id snowflake.ID) (Customer, error)
	Update(ctx context.Context, id snowflake.ID, patch CustomerPatch) (Customer, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
