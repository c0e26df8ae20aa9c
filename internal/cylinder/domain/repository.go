package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, cylinder *Cylinder) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Cylinder, error)
	FindBySerial(ctx context.Context, db *gorm.DB, serial string) (*Cylinder, error)
	FindByBarcode(ctx context.Context, db *gorm.DB, barcode string) (*Cylinder, error)
	List(ctx context.Context, db *gorm.DB, req ListCylindersRequest) ([]Cylinder, error)
	Update(ctx context.Context, db *gorm.DB, cylinder *Cylinder) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
