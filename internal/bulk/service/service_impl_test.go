package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gastrak/gastrak/internal/bulk/domain"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	customerrepo "github.com/gastrak/gastrak/internal/customer/repository"
	customersvc "github.com/gastrak/gastrak/internal/customer/service"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	cylinderrepo "github.com/gastrak/gastrak/internal/cylinder/repository"
	cylindersvc "github.com/gastrak/gastrak/internal/cylinder/service"
	locationrepo "github.com/gastrak/gastrak/internal/location/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupBulkService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&cylinderdomain.Cylinder{}, &customerdomain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cylinders := cylindersvc.New(cylindersvc.Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      cylinderrepo.Provide(),
		Locations: locationrepo.Provide(),
	})
	customers := customersvc.New(customersvc.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  customerrepo.Provide(),
	})
	svc := New(Params{Log: zap.NewNop(), Cylinders: cylinders, Customers: customers})
	return svc, db
}

func TestIngestCylindersCSV(t *testing.T) {
	svc, db := setupBulkService(t)
	ctx := context.Background()

	csvBody := strings.Join([]string{
		"serial_number,barcode,gas_type,capacity,pressure_rating",
		"CYL-100,BC-100,oxygen,50,200",
		"CYL-101,BC-101,argon,40,",
	}, "\n")

	result, err := svc.IngestCylinders(ctx, domain.IngestRequest{
		Filename: "cylinders.csv",
		Format:   "csv",
		Reader:   strings.NewReader(csvBody),
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalRows)
	require.Equal(t, 2, result.SuccessCount)
	require.Equal(t, 0, result.ErrorCount)

	var count int64
	require.NoError(t, db.Model(&cylinderdomain.Cylinder{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestIngestCylindersLegacyHeaders(t *testing.T) {
	svc, db := setupBulkService(t)
	ctx := context.Background()

	// Older export sheets carry camelCase headers and the type/size/condition
	// column names; they map onto the canonical columns.
	csvBody := strings.Join([]string{
		"serialNumber,barcode,type,size,condition,pressureRating",
		"CYL-300,BC-300,oxygen,50,full,200",
		"CYL-301,BC-301,argon,40,empty,",
	}, "\n")

	result, err := svc.IngestCylinders(ctx, domain.IngestRequest{
		Filename: "legacy.csv",
		Format:   "csv",
		Reader:   strings.NewReader(csvBody),
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.SuccessCount)
	require.Equal(t, 0, result.ErrorCount)

	var cyl cylinderdomain.Cylinder
	require.NoError(t, db.Where("serial_number = ?", "CYL-300").First(&cyl).Error)
	require.Equal(t, cylinderdomain.GasOxygen, cyl.GasType)
	require.InDelta(t, 50, cyl.Capacity, 0.001)
	require.Equal(t, cylinderdomain.StatusFull, cyl.Status)
	require.InDelta(t, 200, cyl.PressureRate, 0.001)
}

func TestIngestCylindersCollectsRowErrors(t *testing.T) {
	svc, db := setupBulkService(t)
	ctx := context.Background()

	csvBody := strings.Join([]string{
		"serial_number,barcode,gas_type,capacity",
		"CYL-200,BC-200,oxygen,50",
		",BC-201,oxygen,50",
		"CYL-202,BC-202,plasma,50",
		"CYL-203,BC-203,oxygen,abc",
		"CYL-200,BC-204,oxygen,50",
	}, "\n")

	result, err := svc.IngestCylinders(ctx, domain.IngestRequest{
		Filename: "cylinders.csv",
		Format:   "csv",
		Reader:   strings.NewReader(csvBody),
	})
	require.NoError(t, err)
	require.Equal(t, 5, result.TotalRows)
	require.Equal(t, 1, result.SuccessCount)
	require.Equal(t, 4, result.ErrorCount)
	require.Len(t, result.Errors, 4)

	require.Equal(t, 3, result.Errors[0].Row)
	require.Equal(t, "Row 3: serial_number is required", result.Errors[0].Message)
	require.Equal(t, "Row 4: unknown gas_type", result.Errors[1].Message)
	require.Contains(t, result.Errors[2].Message, `Row 5: capacity "abc" is not a number`)
	require.Equal(t, "Row 6: serial_number already registered", result.Errors[3].Message)

	// Good rows persist even when others fail.
	var count int64
	require.NoError(t, db.Model(&cylinderdomain.Cylinder{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestIngestCustomersReportsRowSevenForSixthDataRow(t *testing.T) {
	svc, db := setupBulkService(t)
	ctx := context.Background()

	lines := []string{"name,address,phone,email"}
	for i := 0; i < 10; i++ {
		if i == 5 {
			// Missing email: lands on spreadsheet row 7.
			lines = append(lines, fmt.Sprintf("Customer %d,%d Main St,555-01%02d,", i, i, i))
			continue
		}
		lines = append(lines, fmt.Sprintf("Customer %d,%d Main St,555-01%02d,c%d@fleet.example", i, i, i, i))
	}

	result, err := svc.IngestCustomers(ctx, domain.IngestRequest{
		Filename: "customers.csv",
		Format:   "csv",
		Reader:   strings.NewReader(strings.Join(lines, "\n")),
	})
	require.NoError(t, err)
	require.Equal(t, 10, result.TotalRows)
	require.Equal(t, 9, result.SuccessCount)
	require.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 7, result.Errors[0].Row)
	require.Equal(t, "Row 7: email is required", result.Errors[0].Message)

	var count int64
	require.NoError(t, db.Model(&customerdomain.Customer{}).Count(&count).Error)
	require.EqualValues(t, 9, count)
}

func TestIngestCustomersDuplicateEmail(t *testing.T) {
	svc, _ := setupBulkService(t)
	ctx := context.Background()

	csvBody := strings.Join([]string{
		"name,address,phone,email",
		"Acme,1 Main St,555-0100,billing@acme.example",
		"Acme Again,2 Main St,555-0101,billing@acme.example",
	}, "\n")

	result, err := svc.IngestCustomers(ctx, domain.IngestRequest{
		Filename: "customers.csv",
		Format:   "csv",
		Reader:   strings.NewReader(csvBody),
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.SuccessCount)
	require.Equal(t, 1, result.ErrorCount)
	require.Equal(t, "Row 3: email already registered", result.Errors[0].Message)
}

func TestIngestCustomersMissingColumns(t *testing.T) {
	svc, _ := setupBulkService(t)
	ctx := context.Background()

	csvBody := "name,email\nAcme,billing@acme.example\n"
	_, err := svc.IngestCustomers(ctx, domain.IngestRequest{
		Filename: "customers.csv",
		Format:   "csv",
		Reader:   strings.NewReader(csvBody),
	})
	require.ErrorIs(t, err, domain.ErrMissingColumns)
	require.Contains(t, err.Error(), "address")
	require.Contains(t, err.Error(), "phone")
}

func TestIngestCylindersSkipsBlankRows(t *testing.T) {
	svc, _ := setupBulkService(t)
	ctx := context.Background()

	csvBody := strings.Join([]string{
		"serial_number,barcode,gas_type,capacity",
		"CYL-300,BC-300,oxygen,50",
		",,,",
		"CYL-301,BC-301,oxygen,50",
	}, "\n")

	result, err := svc.IngestCylinders(ctx, domain.IngestRequest{
		Filename: "cylinders.csv",
		Format:   "csv",
		Reader:   strings.NewReader(csvBody),
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalRows)
	require.Equal(t, 2, result.SuccessCount)
	require.Equal(t, 0, result.ErrorCount)
}

func TestIngestCylindersMissingColumns(t *testing.T) {
	svc, _ := setupBulkService(t)
	ctx := context.Background()

	csvBody := "serial_number,gas_type\nCYL-400,oxygen\n"
	_, err := svc.IngestCylinders(ctx, domain.IngestRequest{
		Filename: "cylinders.csv",
		Format:   "csv",
		Reader:   strings.NewReader(csvBody),
	})
	require.ErrorIs(t, err, domain.ErrMissingColumns)
	require.Contains(t, err.Error(), "barcode")
	require.Contains(t, err.Error(), "capacity")
}

func TestIngestCylindersUnsupportedFormat(t *testing.T) {
	svc, _ := setupBulkService(t)
	ctx := context.Background()

	_, err := svc.IngestCylinders(ctx, domain.IngestRequest{
		Filename: "cylinders.pdf",
		Format:   "pdf",
		Reader:   strings.NewReader("whatever"),
	})
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngestCylindersEmptyFile(t *testing.T) {
	svc, _ := setupBulkService(t)
	ctx := context.Background()

	_, err := svc.IngestCylinders(ctx, domain.IngestRequest{
		Filename: "cylinders.csv",
		Format:   "csv",
		Reader:   strings.NewReader(""),
	})
	require.ErrorIs(t, err, domain.ErrEmptyFile)
}
