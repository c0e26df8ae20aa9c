package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	"github.com/gastrak/gastrak/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Customers customerdomain.Repository
	Cylinders cylinderdomain.Repository
}

// New creates the transaction service.
func New(p Params) domain.Service {
	return &ServiceImpl{
		db:        p.DB,
		log:       p.Log.Named("transaction.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		customers: p.Customers,
		cylinders: p.Cylinders,
	}
}

type ServiceImpl struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	customers customerdomain.Repository
	cylinders cylinderdomain.Repository
}

// Create opens a pending transaction with its items in one transaction.
// The total is the sum of quantity times unit price over the items and is
// fixed at this point.
func (s *ServiceImpl) Create(ctx context.Context, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	if !domain.ValidType(req.TransactionType) {
		return nil, domain.ErrInvalidType
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	customer, err := s.customers.FindByID(ctx, s.db, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUnknownCustomer
	}

	now := time.Now().UTC()
	if req.TransactionDate.IsZero() {
		req.TransactionDate = now
	}

	transaction := &domain.Transaction{
		ID:              s.genID.Generate(),
		CustomerID:      req.CustomerID,
		TransactionType: req.TransactionType,
		Status:          domain.StatusPending,
		TransactionDate: req.TransactionDate,
		CreatedByID:     req.CreatedByID,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var total float64
	for _, input := range req.Items {
		if input.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if input.UnitPrice < 0 {
			return nil, domain.ErrInvalidUnitPrice
		}
		if input.CylinderID != nil {
			cylinder, err := s.cylinders.FindByID(ctx, s.db, *input.CylinderID)
			if err != nil {
				return nil, err
			}
			if cylinder == nil {
				return nil, domain.ErrUnknownCylinder
			}
		}

		line := float64(input.Quantity) * input.UnitPrice
		total += line
		transaction.Items = append(transaction.Items, domain.Item{
			ID:            s.genID.Generate(),
			TransactionID: transaction.ID,
			CylinderID:    input.CylinderID,
			Description:   input.Description,
			Quantity:      input.Quantity,
			UnitPrice:     input.UnitPrice,
			LineTotal:     line,
		})
	}
	transaction.TotalAmount = total

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Insert(ctx, tx, transaction)
	})
	if err != nil {
		s.log.Error("failed to insert transaction", zap.Error(err))
		return nil, err
	}

	s.log.Info("transaction opened",
		zap.String("transaction_id", transaction.ID.String()),
		zap.String("customer_id", transaction.CustomerID.String()),
		zap.Float64("total_amount", transaction.TotalAmount),
	)
	return transaction, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id snowflake.ID) (*domain.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, domain.ErrNotFound
	}
	return transaction, nil
}

func (s *ServiceImpl) List(ctx context.Context, req domain.ListTransactionsRequest) ([]domain.Transaction, error) {
	if req.Type != "" && !domain.ValidType(req.Type) {
		return nil, domain.ErrInvalidType
	}
	if req.Status != "" && !domain.ValidStatus(req.Status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.List(ctx, s.db, req)
}

func (s *ServiceImpl) Complete(ctx context.Context, id snowflake.ID) (*domain.Transaction, error) {
	return s.settle(ctx, id, domain.StatusCompleted)
}

func (s *ServiceImpl) Cancel(ctx context.Context, id snowflake.ID) (*domain.Transaction, error) {
	return s.settle(ctx, id, domain.StatusCancelled)
}

func (s *ServiceImpl) settle(ctx context.Context, id snowflake.ID, next domain.Status) (*domain.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, domain.ErrNotFound
	}
	if transaction.Status != domain.StatusPending {
		return nil, domain.ErrNotPending
	}

	now := time.Now().UTC()
	transaction.Status = next
	if next == domain.StatusCompleted {
		transaction.CompletedAt = &now
	}
	transaction.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, transaction); err != nil {
		s.log.Error("failed to settle transaction", zap.Error(err))
		return nil, err
	}

	s.log.Info("transaction settled",
		zap.String("transaction_id", transaction.ID.String()),
		zap.String("status", string(transaction.Status)),
	)
	return transaction, nil
}
