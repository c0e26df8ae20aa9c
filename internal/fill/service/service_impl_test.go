package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	cylinderrepo "github.com/gastrak/gastrak/internal/cylinder/repository"
	"github.com/gastrak/gastrak/internal/fill/domain"
	fillrepo "github.com/gastrak/gastrak/internal/fill/repository"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	locationrepo "github.com/gastrak/gastrak/internal/location/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupFillService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.FillRecord{},
		&cylinderdomain.Cylinder{},
		&locationdomain.Location{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      fillrepo.Provide(),
		Cylinders: cylinderrepo.Provide(),
		Locations: locationrepo.Provide(),
	})
	return svc, db, node
}

func seedFillCylinder(t *testing.T, db *gorm.DB, node *snowflake.Node, status cylinderdomain.Status) cylinderdomain.Cylinder {
	t.Helper()
	cylinder := cylinderdomain.Cylinder{
		ID:           node.Generate(),
		SerialNumber: fmt.Sprintf("CYL-F-%d", node.Generate()),
		Barcode:      fmt.Sprintf("BC-F-%d", node.Generate()),
		GasType:      cylinderdomain.GasOxygen,
		Capacity:     50,
		Status:       status,
	}
	require.NoError(t, db.Create(&cylinder).Error)
	return cylinder
}

func TestRecordFillFlipsEmptyToFull(t *testing.T) {
	svc, db, node := setupFillService(t)
	ctx := context.Background()

	cylinder := seedFillCylinder(t, db, node, cylinderdomain.StatusEmpty)
	record, err := svc.Record(ctx, domain.RecordFillRequest{
		CylinderID: cylinder.ID,
		FilledByID: node.Generate(),
	})
	require.NoError(t, err)
	require.False(t, record.FillDate.IsZero())

	var fresh cylinderdomain.Cylinder
	require.NoError(t, db.Where("id = ?", cylinder.ID).First(&fresh).Error)
	require.Equal(t, cylinderdomain.StatusFull, fresh.Status)
	require.NotNil(t, fresh.LastFillDate)
}

func TestRecordFillKeepsNonEmptyStatus(t *testing.T) {
	svc, db, node := setupFillService(t)
	ctx := context.Background()

	cylinder := seedFillCylinder(t, db, node, cylinderdomain.StatusInService)
	_, err := svc.Record(ctx, domain.RecordFillRequest{
		CylinderID: cylinder.ID,
		FilledByID: node.Generate(),
	})
	require.NoError(t, err)

	var fresh cylinderdomain.Cylinder
	require.NoError(t, db.Where("id = ?", cylinder.ID).First(&fresh).Error)
	require.Equal(t, cylinderdomain.StatusInService, fresh.Status)
	require.NotNil(t, fresh.LastFillDate)
}

func TestRecordFillRejectsRetiredCylinder(t *testing.T) {
	svc, db, node := setupFillService(t)
	ctx := context.Background()

	cylinder := seedFillCylinder(t, db, node, cylinderdomain.StatusRetired)
	_, err := svc.Record(ctx, domain.RecordFillRequest{
		CylinderID: cylinder.ID,
		FilledByID: node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrCylinderRetired)
}

func TestRecordFillUnknownReferences(t *testing.T) {
	svc, db, node := setupFillService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.RecordFillRequest{
		CylinderID: node.Generate(),
		FilledByID: node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrUnknownCylinder)

	cylinder := seedFillCylinder(t, db, node, cylinderdomain.StatusEmpty)
	missing := node.Generate()
	_, err = svc.Record(ctx, domain.RecordFillRequest{
		CylinderID: cylinder.ID,
		LocationID: &missing,
		FilledByID: node.Generate(),
	})
	require.ErrorIs(t, err, domain.ErrUnknownLocation)
}

func TestListFillsByCylinder(t *testing.T) {
	svc, db, node := setupFillService(t)
	ctx := context.Background()

	first := seedFillCylinder(t, db, node, cylinderdomain.StatusEmpty)
	second := seedFillCylinder(t, db, node, cylinderdomain.StatusEmpty)

	for i := 0; i < 2; i++ {
		_, err := svc.Record(ctx, domain.RecordFillRequest{CylinderID: first.ID, FilledByID: node.Generate()})
		require.NoError(t, err)
	}
	_, err := svc.Record(ctx, domain.RecordFillRequest{CylinderID: second.ID, FilledByID: node.Generate()})
	require.NoError(t, err)

	records, err := svc.List(ctx, domain.ListFillsRequest{CylinderID: &first.ID})
	require.NoError(t, err)
	require.Len(t, records, 2)
}
