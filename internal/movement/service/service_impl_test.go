package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	customerrepo "github.com/gastrak/gastrak/internal/customer/repository"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	cylinderrepo "github.com/gastrak/gastrak/internal/cylinder/repository"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	locationrepo "github.com/gastrak/gastrak/internal/location/repository"
	"github.com/gastrak/gastrak/internal/movement/domain"
	movementrepo "github.com/gastrak/gastrak/internal/movement/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type movementFixture struct {
	svc       domain.Service
	db        *gorm.DB
	node      *snowflake.Node
	cylinder  cylinderdomain.Cylinder
	warehouse locationdomain.Location
	site      locationdomain.Location
	customer  customerdomain.Customer
}

func setupMovementService(t *testing.T) *movementFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Movement{},
		&cylinderdomain.Cylinder{},
		&locationdomain.Location{},
		&customerdomain.Customer{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      movementrepo.Provide(),
		Cylinders: cylinderrepo.Provide(),
		Locations: locationrepo.Provide(),
		Customers: customerrepo.Provide(),
	})

	warehouse := locationdomain.Location{ID: node.Generate(), Name: "Warehouse", Type: locationdomain.TypeWarehouse}
	site := locationdomain.Location{ID: node.Generate(), Name: "Site", Type: locationdomain.TypeCustomerSite}
	require.NoError(t, db.Create(&warehouse).Error)
	require.NoError(t, db.Create(&site).Error)

	customer := customerdomain.Customer{ID: node.Generate(), Name: "Acme Welding", Email: "ops@acme.test", IsActive: true}
	require.NoError(t, db.Create(&customer).Error)

	cylinder := cylinderdomain.Cylinder{
		ID:                node.Generate(),
		SerialNumber:      "CYL-M1",
		Barcode:           "BC-M1",
		GasType:           cylinderdomain.GasOxygen,
		Capacity:          50,
		Status:            cylinderdomain.StatusInService,
		CurrentLocationID: &warehouse.ID,
	}
	require.NoError(t, db.Create(&cylinder).Error)

	return &movementFixture{
		svc:       svc,
		db:        db,
		node:      node,
		cylinder:  cylinder,
		warehouse: warehouse,
		site:      site,
		customer:  customer,
	}
}

func (f *movementFixture) reloadCylinder(t *testing.T) cylinderdomain.Cylinder {
	t.Helper()
	var cylinder cylinderdomain.Cylinder
	require.NoError(t, f.db.Where("id = ?", f.cylinder.ID).First(&cylinder).Error)
	return cylinder
}

func TestRecordDeliveryMovesCylinderToCustomer(t *testing.T) {
	f := setupMovementService(t)
	ctx := context.Background()

	movement, err := f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.cylinder.ID,
		MovementType: domain.TypeDelivery,
		ToLocationID: f.site.ID,
		CustomerID:   &f.customer.ID,
		MovedByID:    f.node.Generate(),
	})
	require.NoError(t, err)
	require.NotNil(t, movement.FromLocationID)
	require.Equal(t, f.warehouse.ID, *movement.FromLocationID)

	cylinder := f.reloadCylinder(t)
	require.NotNil(t, cylinder.CurrentLocationID)
	require.Equal(t, f.site.ID, *cylinder.CurrentLocationID)
	require.NotNil(t, cylinder.CurrentCustomerID)
	require.Equal(t, f.customer.ID, *cylinder.CurrentCustomerID)
	require.Equal(t, cylinderdomain.StatusAtCustomer, cylinder.Status)
}

func TestRecordPickupClearsCustomer(t *testing.T) {
	f := setupMovementService(t)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.cylinder.ID,
		MovementType: domain.TypeDelivery,
		ToLocationID: f.site.ID,
		CustomerID:   &f.customer.ID,
		MovedByID:    f.node.Generate(),
	})
	require.NoError(t, err)

	_, err = f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.cylinder.ID,
		MovementType: domain.TypePickup,
		ToLocationID: f.warehouse.ID,
		MovedByID:    f.node.Generate(),
	})
	require.NoError(t, err)

	cylinder := f.reloadCylinder(t)
	require.Equal(t, f.warehouse.ID, *cylinder.CurrentLocationID)
	require.Nil(t, cylinder.CurrentCustomerID)
	require.Equal(t, cylinderdomain.StatusInTransit, cylinder.Status)
}

func TestRecordMovementUnknownReferences(t *testing.T) {
	f := setupMovementService(t)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.node.Generate(),
		MovementType: domain.TypeTransfer,
		ToLocationID: f.warehouse.ID,
		MovedByID:    f.node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrUnknownCylinder)

	_, err = f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.cylinder.ID,
		MovementType: domain.TypeTransfer,
		ToLocationID: f.node.Generate(),
		MovedByID:    f.node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrUnknownLocation)

	missing := f.node.Generate()
	_, err = f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.cylinder.ID,
		MovementType: domain.TypeDelivery,
		ToLocationID: f.site.ID,
		CustomerID:   &missing,
		MovedByID:    f.node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrUnknownCustomer)
}

func TestRecordMovementRetiredCylinder(t *testing.T) {
	f := setupMovementService(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(&cylinderdomain.Cylinder{}).
		Where("id = ?", f.cylinder.ID).
		Update("status", cylinderdomain.StatusRetired).Error)

	_, err := f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.cylinder.ID,
		MovementType: domain.TypeTransfer,
		ToLocationID: f.site.ID,
		MovedByID:    f.node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrCylinderRetired)
}

func TestRecordMovementInvalidType(t *testing.T) {
	f := setupMovementService(t)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, domain.RecordMovementRequest{
		CylinderID:   f.cylinder.ID,
		MovementType: "teleport",
		ToLocationID: f.site.ID,
		MovedByID:    f.node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestListMovementsByCylinder(t *testing.T) {
	f := setupMovementService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Record(ctx, domain.RecordMovementRequest{
			CylinderID:   f.cylinder.ID,
			MovementType: domain.TypeTransfer,
			ToLocationID: f.site.ID,
			MovedByID:    f.node.Generate(),
		})
		require.NoError(t, err)
	}

	movements, err := f.svc.List(ctx, domain.ListMovementsRequest{CylinderID: &f.cylinder.ID})
	require.NoError(t, err)
	require.Len(t, movements, 3)
}
