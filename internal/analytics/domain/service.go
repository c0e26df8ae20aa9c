package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidRange  = errors.New("invalid_report_range")
	ErrUnknownReport = errors.New("unknown_report")
)

// Dashboard is the aggregate fleet snapshot served to the overview page.
type Dashboard struct {
	TotalCylinders      int64            `json:"total_cylinders"`
	CylindersByStatus   map[string]int64 `json:"cylinders_by_status"`
	CylindersByGasType  map[string]int64 `json:"cylinders_by_gas_type"`
	ActiveCustomers     int64            `json:"active_customers"`
	PendingTransactions int64            `json:"pending_transactions"`
	RevenueThisMonth    float64          `json:"revenue_this_month"`
	OverdueMaintenance  int64            `json:"overdue_maintenance"`
	UpcomingMaintenance int64            `json:"upcoming_maintenance"`
	MovementsToday      int64            `json:"movements_today"`
	FillsToday          int64            `json:"fills_today"`
}

// ReportKind names an exportable CSV report.
type ReportKind string

const (
	ReportMovements    ReportKind = "movements"
	ReportTransactions ReportKind = "transactions"
	ReportMaintenance  ReportKind = "maintenance"
)

// ValidReportKind reports whether the value names a known report.
func ValidReportKind(k ReportKind) bool {
	switch k {
	case ReportMovements, ReportTransactions, ReportMaintenance:
		return true
	default:
		return false
	}
}

// ReportRequest bounds a report to a date range. From must not be after To.
type ReportRequest struct {
	Kind ReportKind
	From time.Time
	To   time.Time
}

// Report is a rendered CSV export.
type Report struct {
	Filename string
	Header   []string
	Rows     [][]string
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Report(ctx context.Context, req ReportRequest) (*Report, error)
}
