package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/customer/domain"
	customerrepo "github.com/gastrak/gastrak/internal/customer/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCustomerService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  customerrepo.Provide(),
	})
	return svc, db
}

func TestCreateCustomer(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Name:         "  Acme Welding  ",
		Email:        "Billing@Acme.example",
		BusinessType: "industrial",
		CreditLimit:  5000,
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Welding", customer.Name)
	require.Equal(t, "billing@acme.example", customer.Email)
	require.True(t, customer.IsActive)
	require.NotZero(t, customer.ID)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "  ", Email: "a@b.example"})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme", Email: "not-an-email"})
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme", Email: "billing@acme.example"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme Two", Email: "BILLING@acme.example"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateCustomer(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme", Email: "billing@acme.example"})
	require.NoError(t, err)

	phone := "+1-555-0100"
	inactive := false
	updated, err := svc.Update(ctx, customer.ID, domain.CustomerPatch{Phone: &phone, IsActive: &inactive})
	require.NoError(t, err)
	require.Equal(t, phone, updated.Phone)
	require.False(t, updated.IsActive)

	blank := " "
	_, err = svc.Update(ctx, customer.ID, domain.CustomerPatch{Name: &blank})
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestListCustomersFilters(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme Welding", Email: "a@acme.example"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateCustomerRequest{Name: "Borealis Gas", Email: "b@borealis.example"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, first.ID, domain.CustomerPatch{IsActive: &inactive})
	require.NoError(t, err)

	active := true
	customers, err := svc.List(ctx, domain.ListCustomersRequest{Active: &active})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	require.Equal(t, "Borealis Gas", customers[0].Name)

	customers, err = svc.List(ctx, domain.ListCustomersRequest{Name: "acme"})
	require.NoError(t, err)
	require.Len(t, customers, 1)
	require.Equal(t, "Acme Welding", customers[0].Name)
}

func TestDeleteCustomer(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Acme", Email: "billing@acme.example"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, customer.ID))

	_, err = svc.GetByID(ctx, customer.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, customer.ID), domain.ErrNotFound)
}
