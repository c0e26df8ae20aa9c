package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, location *Location) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Location, error)
	List(ctx context.Context, db *gorm.DB, req ListLocationsRequest, page pagination.Pagination) ([]Location, error)
	Update(ctx context.Context, db *gorm.DB, location *Location) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
