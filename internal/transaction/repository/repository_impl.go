package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/transaction/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

// Provide returns the gorm-backed transaction repository.
func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, transaction *domain.Transaction) error {
	return db.WithContext(ctx).Create(transaction).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListTransactionsRequest) ([]domain.Transaction, error) {
	stmt := db.WithContext(ctx).Model(&domain.Transaction{}).Preload("Items")
	if req.CustomerID != nil {
		stmt = stmt.Where("customer_id = ?", *req.CustomerID)
	}
	if req.Type != "" {
		stmt = stmt.Where("transaction_type = ?", req.Type)
	}
	if req.Status != "" {
		stmt = stmt.Where("status = ?", req.Status)
	}
	if req.From != nil {
		stmt = stmt.Where("transaction_date >= ?", *req.From)
	}
	if req.To != nil {
		stmt = stmt.Where("transaction_date <= ?", *req.To)
	}

	page := pagination.Pagination{Skip: req.Skip, Limit: req.Limit}

	var transactions []domain.Transaction
	if err := page.Apply(stmt).Order("transaction_date desc, id desc").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, transaction *domain.Transaction) error {
	return db.WithContext(ctx).Omit("Items").Save(transaction).Error
}
