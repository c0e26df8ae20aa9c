package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FillRecord captures a cylinder being refilled at a filling station.
// Recording one stamps the cylinder's last fill date and flips an empty
// cylinder to full.
type FillRecord struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	CylinderID   snowflake.ID  `gorm:"column:cylinder_id;not null;index" json:"cylinder_id"`
	LocationID   *snowflake.ID `gorm:"column:location_id" json:"location_id,omitempty"`
	FilledByID   snowflake.ID  `gorm:"column:filled_by_id;not null" json:"filled_by_id"`
	FillDate     time.Time     `gorm:"column:fill_date;not null;index" json:"fill_date"`
	FillPressure float64       `gorm:"column:fill_pressure" json:"fill_pressure,omitempty"`
	FillWeight   float64       `gorm:"column:fill_weight" json:"fill_weight,omitempty"`
	Notes        string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (FillRecord) TableName() string { return "fill_records" }
