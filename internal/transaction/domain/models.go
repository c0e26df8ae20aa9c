package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Type enumerates the commercial transaction kinds.
type Type string

const (
	TypeSale     Type = "sale"
	TypeRental   Type = "rental"
	TypeRefill   Type = "refill"
	TypeExchange Type = "exchange"
	TypeReturn   Type = "return"
)

// ValidType reports whether the value is a known transaction type.
func ValidType(t Type) bool {
	switch t {
	case TypeSale, TypeRental, TypeRefill, TypeExchange, TypeReturn:
		return true
	default:
		return false
	}
}

// Status tracks a transaction through settlement. Completion is one-way.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether the value is a known transaction status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Transaction is a commercial event against a customer. TotalAmount is
// computed from the items at creation and never recomputed.
type Transaction struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID      snowflake.ID `gorm:"column:customer_id;not null;index" json:"customer_id"`
	TransactionType Type         `gorm:"column:transaction_type;type:text;not null" json:"transaction_type"`
	Status          Status       `gorm:"type:text;not null;index" json:"status"`
	TotalAmount     float64      `gorm:"column:total_amount;not null" json:"total_amount"`
	TransactionDate time.Time    `gorm:"column:transaction_date;not null;index" json:"transaction_date"`
	CompletedAt     *time.Time   `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedByID     snowflake.ID `gorm:"column:created_by_id;not null" json:"created_by_id"`
	Notes           string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []Item `gorm:"foreignKey:TransactionID" json:"items"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "transactions" }

// Item is a single line of a transaction.
type Item struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	TransactionID snowflake.ID  `gorm:"column:transaction_id;not null;index" json:"transaction_id"`
	CylinderID    *snowflake.ID `gorm:"column:cylinder_id" json:"cylinder_id,omitempty"`
	Description   string        `gorm:"type:text" json:"description,omitempty"`
	Quantity      int           `gorm:"not null" json:"quantity"`
	UnitPrice     float64       `gorm:"column:unit_price;not null" json:"unit_price"`
	LineTotal     float64       `gorm:"column:line_total;not null" json:"line_total"`
}

// TableName sets the database table name.
func (Item) TableName() string { return "transaction_items" }
