package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrUserInactive       = errors.New("user_inactive")
	ErrTokenExpired       = errors.New("token_expired")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidID          = errors.New("invalid_id")
)

type RegisterRequest struct {
	Email         string
	Password      string
	FullName      string
	Role          Role
	PhoneNumber   string
	Address       string
	LicenseNumber *string
	VehicleID     *string
	Certification *string
}

type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult carries the raw bearer token exactly once, at issuance.
type LoginResult struct {
	RawToken  string
	ExpiresAt time.Time
	User      User
}

// UserPatch enumerates the mutable user fields. Nil means "leave unchanged".
type UserPatch struct {
	FullName      *string
	Role          *Role
	PhoneNumber   *string
	Address       *string
	LicenseNumber *string
	VehicleID     *string
	Certification *string
	IsActive      *bool
	Password      *string
}

type ListUsersRequest struct {
	Skip  int
	Limit int
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Authenticate(ctx context.Context, rawToken string) (User, error)
	GetByID(ctx context.Context, id snowflake.ID) (User, error)
	List(ctx context.Context, req ListUsersRequest) ([]User, error)
	Update(ctx context.Context, id snowflake.ID, patch UserPatch) (User, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
