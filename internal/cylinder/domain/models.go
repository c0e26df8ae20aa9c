package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the closed lifecycle enumeration for a cylinder. Transitions
// happen as side effects of movements, maintenance, and fills; the update
// endpoint may override it directly as an administrative correction.
type Status string

const (
	StatusInService   Status = "in_service"
	StatusInTransit   Status = "in_transit"
	StatusAtCustomer  Status = "at_customer"
	StatusEmpty       Status = "empty"
	StatusFull        Status = "full"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
	StatusLost        Status = "lost"
)

// ValidStatus reports whether the value is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInService, StatusInTransit, StatusAtCustomer, StatusEmpty,
		StatusFull, StatusMaintenance, StatusRetired, StatusLost:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further designed transitions leave the state.
func Terminal(s Status) bool {
	return s == StatusRetired || s == StatusLost
}

// GasType enumerates the gases a cylinder may hold.
type GasType string

const (
	GasOxygen    GasType = "oxygen"
	GasNitrogen  GasType = "nitrogen"
	GasArgon     GasType = "argon"
	GasCO2       GasType = "co2"
	GasAcetylene GasType = "acetylene"
	GasHelium    GasType = "helium"
	GasPropane   GasType = "propane"
)

// ValidGasType reports whether the value is a known gas type.
func ValidGasType(g GasType) bool {
	switch g {
	case GasOxygen, GasNitrogen, GasArgon, GasCO2, GasAcetylene, GasHelium, GasPropane:
		return true
	default:
		return false
	}
}

// Cylinder is a tracked physical asset. Serial number and barcode are
// globally unique.
type Cylinder struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	SerialNumber string       `gorm:"column:serial_number;type:text;not null;uniqueIndex" json:"serial_number"`
	Barcode      string       `gorm:"type:text;not null;uniqueIndex" json:"barcode"`
	GasType      GasType      `gorm:"column:gas_type;type:text;not null" json:"gas_type"`
	Capacity     float64      `gorm:"not null" json:"capacity"`
	PressureRate float64      `gorm:"column:pressure_rating" json:"pressure_rating,omitempty"`
	TareWeight   float64      `gorm:"column:tare_weight" json:"tare_weight,omitempty"`
	Status       Status       `gorm:"type:text;not null;index" json:"status"`

	CurrentLocationID *snowflake.ID `gorm:"column:current_location_id;index" json:"current_location_id,omitempty"`
	CurrentCustomerID *snowflake.ID `gorm:"column:current_customer_id;index" json:"current_customer_id,omitempty"`

	ManufactureDate    *time.Time `gorm:"column:manufacture_date" json:"manufacture_date,omitempty"`
	LastInspectionDate *time.Time `gorm:"column:last_inspection_date" json:"last_inspection_date,omitempty"`
	NextInspectionDate *time.Time `gorm:"column:next_inspection_date" json:"next_inspection_date,omitempty"`
	LastHydroTestDate  *time.Time `gorm:"column:last_hydro_test_date" json:"last_hydro_test_date,omitempty"`
	NextHydroTestDate  *time.Time `gorm:"column:next_hydro_test_date" json:"next_hydro_test_date,omitempty"`
	LastFillDate       *time.Time `gorm:"column:last_fill_date" json:"last_fill_date,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Cylinder) TableName() string { return "cylinders" }
