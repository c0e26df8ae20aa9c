package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/cylinder/domain"
	cylinderrepo "github.com/gastrak/gastrak/internal/cylinder/repository"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	locationrepo "github.com/gastrak/gastrak/internal/location/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupCylinderService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Cylinder{}, &locationdomain.Location{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      cylinderrepo.Provide(),
		Locations: locationrepo.Provide(),
	})
	return svc, db, node
}

func seedLocation(t *testing.T, db *gorm.DB, node *snowflake.Node) locationdomain.Location {
	t.Helper()
	loc := locationdomain.Location{
		ID:   node.Generate(),
		Name: "Main Warehouse",
		Type: locationdomain.TypeWarehouse,
	}
	require.NoError(t, db.Create(&loc).Error)
	return loc
}

func TestCreateCylinder(t *testing.T) {
	svc, _, _ := setupCylinderService(t)
	ctx := context.Background()

	cylinder, err := svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-001",
		Barcode:      "BC-001",
		GasType:      domain.GasOxygen,
		Capacity:     50,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInService, cylinder.Status)
	require.NotZero(t, cylinder.ID)
}

func TestCreateCylinderDuplicateSerial(t *testing.T) {
	svc, _, _ := setupCylinderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-001",
		Barcode:      "BC-001",
		GasType:      domain.GasOxygen,
		Capacity:     50,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-001",
		Barcode:      "BC-002",
		GasType:      domain.GasOxygen,
		Capacity:     50,
	})
	require.ErrorIs(t, err, domain.ErrSerialTaken)

	_, err = svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-002",
		Barcode:      "BC-001",
		GasType:      domain.GasOxygen,
		Capacity:     50,
	})
	require.ErrorIs(t, err, domain.ErrBarcodeTaken)
}

func TestCreateCylinderValidation(t *testing.T) {
	svc, _, _ := setupCylinderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCylinderRequest{
		Barcode:  "BC-001",
		GasType:  domain.GasOxygen,
		Capacity: 50,
	})
	require.ErrorIs(t, err, domain.ErrInvalidSerial)

	_, err = svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-001",
		Barcode:      "BC-001",
		GasType:      "plasma",
		Capacity:     50,
	})
	require.ErrorIs(t, err, domain.ErrInvalidGasType)

	_, err = svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-001",
		Barcode:      "BC-001",
		GasType:      domain.GasOxygen,
	})
	require.ErrorIs(t, err, domain.ErrInvalidCapacity)
}

func TestCreateCylinderUnknownLocation(t *testing.T) {
	svc, _, node := setupCylinderService(t)
	ctx := context.Background()

	missing := node.Generate()
	_, err := svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber:      "CYL-001",
		Barcode:           "BC-001",
		GasType:           domain.GasOxygen,
		Capacity:          50,
		CurrentLocationID: &missing,
	})
	require.ErrorIs(t, err, domain.ErrUnknownLocation)
}

func TestSearchCylinderResolutionOrder(t *testing.T) {
	svc, _, _ := setupCylinderService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-100",
		Barcode:      "BC-100",
		GasType:      domain.GasArgon,
		Capacity:     40,
	})
	require.NoError(t, err)

	byID, err := svc.Search(ctx, created.ID.String())
	require.NoError(t, err)
	require.Equal(t, created.ID, byID.ID)

	bySerial, err := svc.Search(ctx, "CYL-100")
	require.NoError(t, err)
	require.Equal(t, created.ID, bySerial.ID)

	byBarcode, err := svc.Search(ctx, "BC-100")
	require.NoError(t, err)
	require.Equal(t, created.ID, byBarcode.ID)

	_, err = svc.Search(ctx, "does-not-exist")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateCylinderStatusAndLocation(t *testing.T) {
	svc, db, node := setupCylinderService(t)
	ctx := context.Background()

	loc := seedLocation(t, db, node)
	created, err := svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-200",
		Barcode:      "BC-200",
		GasType:      domain.GasCO2,
		Capacity:     20,
	})
	require.NoError(t, err)

	status := domain.StatusMaintenance
	updated, err := svc.Update(ctx, created.ID, domain.CylinderPatch{
		Status:            &status,
		CurrentLocationID: &loc.ID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusMaintenance, updated.Status)
	require.NotNil(t, updated.CurrentLocationID)
	require.Equal(t, loc.ID, *updated.CurrentLocationID)

	bad := domain.Status("teleported")
	_, err = svc.Update(ctx, created.ID, domain.CylinderPatch{Status: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListCylindersFilters(t *testing.T) {
	svc, _, _ := setupCylinderService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.CreateCylinderRequest{
			SerialNumber: fmt.Sprintf("CYL-%d", i),
			Barcode:      fmt.Sprintf("BC-%d", i),
			GasType:      domain.GasOxygen,
			Capacity:     50,
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-N",
		Barcode:      "BC-N",
		GasType:      domain.GasNitrogen,
		Capacity:     50,
		Status:       domain.StatusEmpty,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.ListCylindersRequest{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	empty, err := svc.List(ctx, domain.ListCylindersRequest{Status: domain.StatusEmpty})
	require.NoError(t, err)
	require.Len(t, empty, 1)

	nitrogen, err := svc.List(ctx, domain.ListCylindersRequest{GasType: domain.GasNitrogen})
	require.NoError(t, err)
	require.Len(t, nitrogen, 1)

	_, err = svc.List(ctx, domain.ListCylindersRequest{Status: "unknown"})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestDeleteCylinder(t *testing.T) {
	svc, _, node := setupCylinderService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCylinderRequest{
		SerialNumber: "CYL-300",
		Barcode:      "BC-300",
		GasType:      domain.GasHelium,
		Capacity:     10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, node.Generate()), domain.ErrNotFound)
}
