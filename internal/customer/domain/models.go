package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a business counterpart owning locations, cylinders, and transactions.
type Customer struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"type:text;not null;index" json:"name"`
	Email   string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone   string       `gorm:"type:text" json:"phone,omitempty"`
	Address string       `gorm:"type:text" json:"address,omitempty"`
	City    string       `gorm:"type:text" json:"city,omitempty"`
	State   string       `gorm:"type:text" json:"state,omitempty"`
	ZipCode string       `gorm:"column:zip_code;type:text" json:"zip_code,omitempty"`
	Country string       `gorm:"type:text" json:"country,omitempty"`

	BusinessType string  `gorm:"column:business_type;type:text" json:"business_type,omitempty"`
	TaxID        string  `gorm:"column:tax_id;type:text" json:"tax_id,omitempty"`
	CreditLimit  float64 `gorm:"column:credit_limit" json:"credit_limit,omitempty"`
	PaymentTerms string  `gorm:"column:payment_terms;type:text" json:"payment_terms,omitempty"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
