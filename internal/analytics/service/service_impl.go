package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/analytics/domain"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	filldomain "github.com/gastrak/gastrak/internal/fill/domain"
	maintenancedomain "github.com/gastrak/gastrak/internal/maintenance/domain"
	movementdomain "github.com/gastrak/gastrak/internal/movement/domain"
	transactiondomain "github.com/gastrak/gastrak/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

// New creates the analytics service. It reads across the fleet tables
// directly rather than through the per-module repositories.
func New(p Params) domain.Service {
	return &ServiceImpl{
		db:  p.DB,
		log: p.Log.Named("analytics.service"),
	}
}

type ServiceImpl struct {
	db  *gorm.DB
	log *zap.Logger
}

type bucket struct {
	Key   string
	Count int64
}

func (s *ServiceImpl) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	db := s.db.WithContext(ctx)
	dash := &domain.Dashboard{
		CylindersByStatus:  map[string]int64{},
		CylindersByGasType: map[string]int64{},
	}

	if err := db.Model(&cylinderdomain.Cylinder{}).Count(&dash.TotalCylinders).Error; err != nil {
		return nil, err
	}

	var byStatus []bucket
	err := db.Model(&cylinderdomain.Cylinder{}).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		dash.CylindersByStatus[b.Key] = b.Count
	}

	var byGas []bucket
	err = db.Model(&cylinderdomain.Cylinder{}).
		Select("gas_type as key, count(*) as count").
		Group("gas_type").
		Scan(&byGas).Error
	if err != nil {
		return nil, err
	}
	for _, b := range byGas {
		dash.CylindersByGasType[b.Key] = b.Count
	}

	err = db.Model(&customerdomain.Customer{}).
		Where("is_active = ?", true).
		Count(&dash.ActiveCustomers).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&transactiondomain.Transaction{}).
		Where("status = ?", transactiondomain.StatusPending).
		Count(&dash.PendingTransactions).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var revenue *float64
	err = db.Model(&transactiondomain.Transaction{}).
		Select("sum(total_amount)").
		Where("status = ?", transactiondomain.StatusCompleted).
		Where("transaction_date >= ?", monthStart).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue != nil {
		dash.RevenueThisMonth = *revenue
	}

	err = db.Model(&maintenancedomain.Record{}).
		Where("status = ?", maintenancedomain.RecordScheduled).
		Where("scheduled_date < ?", now).
		Count(&dash.OverdueMaintenance).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&maintenancedomain.Record{}).
		Where("status = ?", maintenancedomain.RecordScheduled).
		Where("scheduled_date >= ? AND scheduled_date < ?", now, now.AddDate(0, 0, 30)).
		Count(&dash.UpcomingMaintenance).Error
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	err = db.Model(&movementdomain.Movement{}).
		Where("movement_date >= ?", dayStart).
		Count(&dash.MovementsToday).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&filldomain.FillRecord{}).
		Where("fill_date >= ?", dayStart).
		Count(&dash.FillsToday).Error
	if err != nil {
		return nil, err
	}

	return dash, nil
}

func (s *ServiceImpl) Report(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	if !domain.ValidReportKind(req.Kind) {
		return nil, domain.ErrUnknownReport
	}
	if req.From.IsZero() || req.To.IsZero() || req.From.After(req.To) {
		return nil, domain.ErrInvalidRange
	}

	switch req.Kind {
	case domain.ReportMovements:
		return s.movementReport(ctx, req)
	case domain.ReportTransactions:
		return s.transactionReport(ctx, req)
	default:
		return s.maintenanceReport(ctx, req)
	}
}

func reportFilename(kind domain.ReportKind, req domain.ReportRequest) string {
	return fmt.Sprintf("%s_%s_%s.csv",
		kind,
		req.From.Format("2006-01-02"),
		req.To.Format("2006-01-02"),
	)
}

func (s *ServiceImpl) movementReport(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	var movements []movementdomain.Movement
	err := s.db.WithContext(ctx).
		Where("movement_date >= ? AND movement_date <= ?", req.From, req.To).
		Order("movement_date asc, id asc").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Filename: reportFilename(domain.ReportMovements, req),
		Header:   []string{"id", "cylinder_id", "movement_type", "from_location_id", "to_location_id", "customer_id", "moved_by_id", "movement_date", "notes"},
	}
	for _, m := range movements {
		report.Rows = append(report.Rows, []string{
			m.ID.String(),
			m.CylinderID.String(),
			string(m.MovementType),
			optionalID(m.FromLocationID),
			m.ToLocationID.String(),
			optionalID(m.CustomerID),
			m.MovedByID.String(),
			m.MovementDate.UTC().Format(time.RFC3339),
			m.Notes,
		})
	}
	return report, nil
}

func (s *ServiceImpl) transactionReport(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	var transactions []transactiondomain.Transaction
	err := s.db.WithContext(ctx).
		Where("transaction_date >= ? AND transaction_date <= ?", req.From, req.To).
		Order("transaction_date asc, id asc").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Filename: reportFilename(domain.ReportTransactions, req),
		Header:   []string{"id", "customer_id", "transaction_type", "status", "total_amount", "transaction_date", "notes"},
	}
	for _, t := range transactions {
		report.Rows = append(report.Rows, []string{
			t.ID.String(),
			t.CustomerID.String(),
			string(t.TransactionType),
			string(t.Status),
			strconv.FormatFloat(t.TotalAmount, 'f', 2, 64),
			t.TransactionDate.UTC().Format(time.RFC3339),
			t.Notes,
		})
	}
	return report, nil
}

func (s *ServiceImpl) maintenanceReport(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	var records []maintenancedomain.Record
	err := s.db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date <= ?", req.From, req.To).
		Order("scheduled_date asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Filename: reportFilename(domain.ReportMaintenance, req),
		Header:   []string{"id", "cylinder_id", "maintenance_type", "status", "scheduled_date", "completed_date", "cost", "description"},
	}
	for _, r := range records {
		completed := ""
		if r.CompletedDate != nil {
			completed = r.CompletedDate.UTC().Format(time.RFC3339)
		}
		report.Rows = append(report.Rows, []string{
			r.ID.String(),
			r.CylinderID.String(),
			string(r.MaintenanceType),
			string(r.Status),
			r.ScheduledDate.UTC().Format(time.RFC3339),
			completed,
			strconv.FormatFloat(r.Cost, 'f', 2, 64),
			r.Description,
		})
	}
	return report, nil
}

func optionalID(id *snowflake.ID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
