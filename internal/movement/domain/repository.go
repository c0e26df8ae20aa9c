package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, movement *Movement) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Movement, error)
	List(ctx context.Context, db *gorm.DB, req ListMovementsRequest) ([]Movement, error)
}
