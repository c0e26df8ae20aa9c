package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Type enumerates the kinds of cylinder movement.
type Type string

const (
	TypeDelivery Type = "delivery"
	TypePickup   Type = "pickup"
	TypeTransfer Type = "transfer"
	TypeReturn   Type = "return"
)

// ValidType reports whether the value is a known movement type.
func ValidType(t Type) bool {
	switch t {
	case TypeDelivery, TypePickup, TypeTransfer, TypeReturn:
		return true
	default:
		return false
	}
}

// Movement is an immutable record of a cylinder changing hands. Recording
// one rewrites the cylinder's current location in the same transaction.
type Movement struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	CylinderID     snowflake.ID  `gorm:"column:cylinder_id;not null;index" json:"cylinder_id"`
	MovementType   Type          `gorm:"column:movement_type;type:text;not null" json:"movement_type"`
	FromLocationID *snowflake.ID `gorm:"column:from_location_id" json:"from_location_id,omitempty"`
	ToLocationID   snowflake.ID  `gorm:"column:to_location_id;not null;index" json:"to_location_id"`
	CustomerID     *snowflake.ID `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	MovedByID      snowflake.ID  `gorm:"column:moved_by_id;not null" json:"moved_by_id"`
	MovementDate   time.Time     `gorm:"column:movement_date;not null;index" json:"movement_date"`
	Notes          string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Movement) TableName() string { return "movements" }
