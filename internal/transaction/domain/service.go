package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound         = errors.New("transaction_not_found")
	ErrInvalidType      = errors.New("invalid_transaction_type")
	ErrInvalidStatus    = errors.New("invalid_transaction_status")
	ErrInvalidID        = errors.New("invalid_transaction_id")
	ErrNoItems          = errors.New("transaction_without_items")
	ErrInvalidQuantity  = errors.New("invalid_item_quantity")
	ErrInvalidUnitPrice = errors.New("invalid_item_unit_price")
	ErrUnknownCustomer  = errors.New("unknown_customer")
	ErrUnknownCylinder  = errors.New("unknown_cylinder")
	ErrNotPending       = errors.New("transaction_not_pending")
)

// ItemInput is one requested line of a new transaction.
type ItemInput struct {
	CylinderID  *snowflake.ID `json:"cylinder_id"`
	Description string        `json:"description"`
	Quantity    int           `json:"quantity"`
	UnitPrice   float64       `json:"unit_price"`
}

// CreateTransactionRequest carries the fields accepted when opening a
// transaction. At least one item is required.
type CreateTransactionRequest struct {
	CustomerID      snowflake.ID `json:"customer_id"`
	TransactionType Type         `json:"transaction_type"`
	TransactionDate time.Time    `json:"transaction_date"`
	CreatedByID     snowflake.ID `json:"-"`
	Notes           string       `json:"notes"`
	Items           []ItemInput  `json:"items"`
}

// ListTransactionsRequest filters and paginates the transaction ledger.
type ListTransactionsRequest struct {
	Skip       int
	Limit      int
	CustomerID *snowflake.ID
	Type       Type
	Status     Status
	From       *time.Time
	To         *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateTransactionRequest) (*Transaction, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Transaction, error)
	List(ctx context.Context, req ListTransactionsRequest) ([]Transaction, error)

	// Complete settles a pending transaction. Completing a transaction in
	// any other state is a conflict.
	Complete(ctx context.Context, id snowflake.ID) (*Transaction, error)

	// Cancel voids a pending transaction.
	Cancel(ctx context.Context, id snowflake.ID) (*Transaction, error)
}
