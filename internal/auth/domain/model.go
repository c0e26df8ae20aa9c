// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role gates what a user may do; enforcement lives in the authorization service.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleDriver     Role = "driver"
	RoleTechnician Role = "technician"
	RoleCustomer   Role = "customer"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDriver, RoleTechnician, RoleCustomer:
		return true
	default:
		return false
	}
}

// User represents a system user account.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string       `gorm:"column:password_hash;type:text;not null" json:"-"`
	FullName     string       `gorm:"column:full_name;type:text" json:"full_name"`
	Role         Role         `gorm:"type:text;not null" json:"role"`
	PhoneNumber  string       `gorm:"column:phone_number;type:text" json:"phone_number,omitempty"`
	Address      string       `gorm:"type:text" json:"address,omitempty"`

	// Driver/technician extras.
	LicenseNumber *string `gorm:"column:license_number;type:text" json:"license_number,omitempty"`
	VehicleID     *string `gorm:"column:vehicle_id;type:text" json:"vehicle_id,omitempty"`
	Certification *string `gorm:"column:certification;type:text" json:"certification,omitempty"`

	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// AccessToken is a persisted bearer credential. Only the SHA-256 hash of
// the raw token is stored.
type AccessToken struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index"`
	TokenHash string       `gorm:"column:token_hash;type:text;not null;uniqueIndex"`
	ExpiresAt time.Time    `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AccessToken) TableName() string { return "access_tokens" }
