package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *FillRecord) error
	List(ctx context.Context, db *gorm.DB, req ListFillsRequest) ([]FillRecord, error)
}
