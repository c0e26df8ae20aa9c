package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/analytics/domain"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	filldomain "github.com/gastrak/gastrak/internal/fill/domain"
	maintenancedomain "github.com/gastrak/gastrak/internal/maintenance/domain"
	movementdomain "github.com/gastrak/gastrak/internal/movement/domain"
	transactiondomain "github.com/gastrak/gastrak/internal/transaction/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAnalyticsService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&cylinderdomain.Cylinder{},
		&customerdomain.Customer{},
		&movementdomain.Movement{},
		&maintenancedomain.Record{},
		&transactiondomain.Transaction{},
		&transactiondomain.Item{},
		&filldomain.FillRecord{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{DB: db, Log: zap.NewNop()})
	return svc, db, node
}

func TestDashboardCounts(t *testing.T) {
	svc, db, node := setupAnalyticsService(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i, status := range []cylinderdomain.Status{
		cylinderdomain.StatusInService,
		cylinderdomain.StatusInService,
		cylinderdomain.StatusEmpty,
	} {
		gas := cylinderdomain.GasOxygen
		if i == 2 {
			gas = cylinderdomain.GasArgon
		}
		require.NoError(t, db.Create(&cylinderdomain.Cylinder{
			ID:           node.Generate(),
			SerialNumber: fmt.Sprintf("CYL-A-%d", i),
			Barcode:      fmt.Sprintf("BC-A-%d", i),
			GasType:      gas,
			Capacity:     50,
			Status:       status,
		}).Error)
	}

	require.NoError(t, db.Create(&customerdomain.Customer{
		ID: node.Generate(), Name: "Acme", Email: "a@acme.example", IsActive: true,
	}).Error)
	// Create then flip: gorm swaps a zero-valued IsActive for the column
	// default on insert, so a plain Create would store the customer active.
	dormantID := node.Generate()
	require.NoError(t, db.Create(&customerdomain.Customer{
		ID: dormantID, Name: "Dormant", Email: "d@dormant.example",
	}).Error)
	require.NoError(t, db.Model(&customerdomain.Customer{}).
		Where("id = ?", dormantID).
		Update("is_active", false).Error)

	customerID := node.Generate()
	require.NoError(t, db.Create(&transactiondomain.Transaction{
		ID:              node.Generate(),
		CustomerID:      customerID,
		TransactionType: transactiondomain.TypeSale,
		Status:          transactiondomain.StatusPending,
		TotalAmount:     40,
		TransactionDate: now,
	}).Error)
	require.NoError(t, db.Create(&transactiondomain.Transaction{
		ID:              node.Generate(),
		CustomerID:      customerID,
		TransactionType: transactiondomain.TypeSale,
		Status:          transactiondomain.StatusCompleted,
		TotalAmount:     125.50,
		TransactionDate: now,
	}).Error)

	cylinderID := node.Generate()
	require.NoError(t, db.Create(&maintenancedomain.Record{
		ID:              node.Generate(),
		CylinderID:      cylinderID,
		MaintenanceType: maintenancedomain.TypeInspection,
		Status:          maintenancedomain.RecordScheduled,
		ScheduledDate:   now.AddDate(0, 0, -3),
	}).Error)
	require.NoError(t, db.Create(&maintenancedomain.Record{
		ID:              node.Generate(),
		CylinderID:      cylinderID,
		MaintenanceType: maintenancedomain.TypeHydroTest,
		Status:          maintenancedomain.RecordScheduled,
		ScheduledDate:   now.AddDate(0, 0, 7),
	}).Error)

	require.NoError(t, db.Create(&movementdomain.Movement{
		ID:           node.Generate(),
		CylinderID:   cylinderID,
		MovementType: movementdomain.TypeDelivery,
		ToLocationID: node.Generate(),
		MovedByID:    node.Generate(),
		MovementDate: now,
	}).Error)
	require.NoError(t, db.Create(&filldomain.FillRecord{
		ID:         node.Generate(),
		CylinderID: cylinderID,
		FilledByID: node.Generate(),
		FillDate:   now,
	}).Error)

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, dash.TotalCylinders)
	require.EqualValues(t, 2, dash.CylindersByStatus[string(cylinderdomain.StatusInService)])
	require.EqualValues(t, 1, dash.CylindersByStatus[string(cylinderdomain.StatusEmpty)])
	require.EqualValues(t, 2, dash.CylindersByGasType[string(cylinderdomain.GasOxygen)])
	require.EqualValues(t, 1, dash.CylindersByGasType[string(cylinderdomain.GasArgon)])
	require.EqualValues(t, 1, dash.ActiveCustomers)
	require.EqualValues(t, 1, dash.PendingTransactions)
	require.InDelta(t, 125.50, dash.RevenueThisMonth, 0.001)
	require.EqualValues(t, 1, dash.OverdueMaintenance)
	require.EqualValues(t, 1, dash.UpcomingMaintenance)
	require.EqualValues(t, 1, dash.MovementsToday)
	require.EqualValues(t, 1, dash.FillsToday)
}

func TestDashboardEmptyFleet(t *testing.T) {
	svc, _, _ := setupAnalyticsService(t)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Zero(t, dash.TotalCylinders)
	require.Zero(t, dash.RevenueThisMonth)
	require.Empty(t, dash.CylindersByStatus)
}

func TestMovementReport(t *testing.T) {
	svc, db, node := setupAnalyticsService(t)
	ctx := context.Background()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	inside := movementdomain.Movement{
		ID:           node.Generate(),
		CylinderID:   node.Generate(),
		MovementType: movementdomain.TypeDelivery,
		ToLocationID: node.Generate(),
		MovedByID:    node.Generate(),
		MovementDate: from.AddDate(0, 0, 10),
		Notes:        "afternoon run",
	}
	require.NoError(t, db.Create(&inside).Error)
	require.NoError(t, db.Create(&movementdomain.Movement{
		ID:           node.Generate(),
		CylinderID:   node.Generate(),
		MovementType: movementdomain.TypePickup,
		ToLocationID: node.Generate(),
		MovedByID:    node.Generate(),
		MovementDate: from.AddDate(0, -2, 0),
	}).Error)

	report, err := svc.Report(ctx, domain.ReportRequest{Kind: domain.ReportMovements, From: from, To: to})
	require.NoError(t, err)
	require.Equal(t, "movements_2026-08-01_2026-08-31.csv", report.Filename)
	require.Len(t, report.Rows, 1)
	require.Equal(t, inside.ID.String(), report.Rows[0][0])
	require.Equal(t, string(movementdomain.TypeDelivery), report.Rows[0][2])
	require.Equal(t, "afternoon run", report.Rows[0][8])
}

func TestTransactionReportFormatsAmounts(t *testing.T) {
	svc, db, node := setupAnalyticsService(t)
	ctx := context.Background()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	require.NoError(t, db.Create(&transactiondomain.Transaction{
		ID:              node.Generate(),
		CustomerID:      node.Generate(),
		TransactionType: transactiondomain.TypeRental,
		Status:          transactiondomain.StatusCompleted,
		TotalAmount:     99.5,
		TransactionDate: from.AddDate(0, 0, 3),
	}).Error)

	report, err := svc.Report(ctx, domain.ReportRequest{Kind: domain.ReportTransactions, From: from, To: to})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	require.Equal(t, "99.50", report.Rows[0][4])
}

func TestReportValidation(t *testing.T) {
	svc, _, _ := setupAnalyticsService(t)
	ctx := context.Background()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Report(ctx, domain.ReportRequest{Kind: domain.ReportKind("inventory"), From: from, To: from})
	require.ErrorIs(t, err, domain.ErrUnknownReport)

	_, err = svc.Report(ctx, domain.ReportRequest{Kind: domain.ReportMovements, From: from.AddDate(0, 1, 0), To: from})
	require.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.Report(ctx, domain.ReportRequest{Kind: domain.ReportMovements})
	require.ErrorIs(t, err, domain.ErrInvalidRange)
}
