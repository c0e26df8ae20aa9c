package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	customerrepo "github.com/gastrak/gastrak/internal/customer/repository"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	cylinderrepo "github.com/gastrak/gastrak/internal/cylinder/repository"
	"github.com/gastrak/gastrak/internal/transaction/domain"
	transactionrepo "github.com/gastrak/gastrak/internal/transaction/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTransactionService(t *testing.T) (domain.Service, *snowflake.Node, customerdomain.Customer) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Transaction{},
		&domain.Item{},
		&customerdomain.Customer{},
		&cylinderdomain.Cylinder{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      transactionrepo.Provide(),
		Customers: customerrepo.Provide(),
		Cylinders: cylinderrepo.Provide(),
	})

	customer := customerdomain.Customer{ID: node.Generate(), Name: "Acme Welding", Email: "ops@acme.test", IsActive: true}
	require.NoError(t, db.Create(&customer).Error)

	return svc, node, customer
}

func TestCreateTransactionComputesTotalOnce(t *testing.T) {
	svc, node, customer := setupTransactionService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
		Items: []domain.ItemInput{
			{Description: "oxygen refill", Quantity: 2, UnitPrice: 25},
			{Description: "delivery fee", Quantity: 1, UnitPrice: 50},
		},
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, created.Status)
	require.Equal(t, float64(100), created.TotalAmount)
	require.Len(t, created.Items, 2)
	require.Equal(t, float64(50), created.Items[0].LineTotal)
}

func TestCompleteTransactionIsOneWay(t *testing.T) {
	svc, node, customer := setupTransactionService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeRefill,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{Description: "refill", Quantity: 1, UnitPrice: 30}},
	})
	require.NoError(t, err)

	require.Nil(t, created.CompletedAt)

	completed, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.WithinDuration(t, time.Now().UTC(), *completed.CompletedAt, time.Minute)
	stamped := *completed.CompletedAt

	_, err = svc.Complete(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotPending)

	_, err = svc.Cancel(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotPending)

	// The original completion timestamp survives the rejected retries.
	fresh, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.CompletedAt)
	require.WithinDuration(t, stamped, *fresh.CompletedAt, time.Second)
}

func TestCancelTransaction(t *testing.T) {
	svc, node, customer := setupTransactionService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeRental,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{Description: "rental", Quantity: 1, UnitPrice: 15}},
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Nil(t, cancelled.CompletedAt)

	_, err = svc.Complete(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotPending)
}

func TestCreateTransactionValidation(t *testing.T) {
	svc, node, customer := setupTransactionService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrNoItems)

	_, err = svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{Quantity: 0, UnitPrice: 10}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{Quantity: 1, UnitPrice: -5}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidUnitPrice)

	_, err = svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      node.Generate(),
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{Quantity: 1, UnitPrice: 10}},
	})
	require.ErrorIs(t, err, domain.ErrUnknownCustomer)

	missing := node.Generate()
	_, err = svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{CylinderID: &missing, Quantity: 1, UnitPrice: 10}},
	})
	require.ErrorIs(t, err, domain.ErrUnknownCylinder)
}

func TestListTransactionsByStatus(t *testing.T) {
	svc, node, customer := setupTransactionService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateTransactionRequest{
		CustomerID:      customer.ID,
		TransactionType: domain.TypeSale,
		CreatedByID:     node.Generate(),
		Items:           []domain.ItemInput{{Quantity: 1, UnitPrice: 20}},
	})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, first.ID)
	require.NoError(t, err)

	pending, err := svc.List(ctx, domain.ListTransactionsRequest{Status: domain.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)

	completed, err := svc.List(ctx, domain.ListTransactionsRequest{Status: domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Len(t, completed[0].Items, 1)
}
