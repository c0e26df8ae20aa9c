package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// LocationType classifies a physical site.
type LocationType string

const (
	TypeWarehouse      LocationType = "warehouse"
	TypeCustomerSite   LocationType = "customer_site"
	TypeFillingStation LocationType = "filling_station"
	TypeDepot          LocationType = "depot"
	TypeOther          LocationType = "other"
)

// ValidType reports whether the value is a known location type.
func ValidType(t LocationType) bool {
	switch t {
	case TypeWarehouse, TypeCustomerSite, TypeFillingStation, TypeDepot, TypeOther:
		return true
	default:
		return false
	}
}

// Location is a physical site; operator-owned when CustomerID is nil.
type Location struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID *snowflake.ID `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	Name       string        `gorm:"type:text;not null" json:"name"`
	Type       LocationType  `gorm:"type:text;not null" json:"type"`
	Address    string        `gorm:"type:text" json:"address,omitempty"`
	City       string        `gorm:"type:text" json:"city,omitempty"`
	State      string        `gorm:"type:text" json:"state,omitempty"`
	ZipCode    string        `gorm:"column:zip_code;type:text" json:"zip_code,omitempty"`
	Country    string        `gorm:"type:text" json:"country,omitempty"`
	IsPrimary  bool          `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	CreatedAt  time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Location) TableName() string { return "locations" }
