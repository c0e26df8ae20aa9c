package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]User, error)
	Update(ctx context.Context, db *gorm.DB, user *User) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}

type TokenRepository interface {
	Insert(ctx context.Context, db *gorm.DB, token *AccessToken) error
	FindByHash(ctx context.Context, db *gorm.DB, hash string) (*AccessToken, error)
	DeleteExpired(ctx context.Context, db *gorm.DB) error
}
