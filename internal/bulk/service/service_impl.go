package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gastrak/gastrak/internal/bulk/domain"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	cylinderColumns = []string{"serial_number", "barcode", "gas_type", "capacity"}
	customerColumns = []string{"name", "address", "phone", "email"}

	// Header names used by older fleet exports, mapped onto the canonical
	// column names. Applied after camelCase headers are normalized.
	columnAliases = map[string]string{
		"type":      "gas_type",
		"size":      "capacity",
		"condition": "status",
	}
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Cylinders cylinderdomain.Service
	Customers customerdomain.Service
}

// New creates the bulk ingest service.
func New(p Params) domain.Service {
	return &ServiceImpl{
		log:       p.Log.Named("bulk.service"),
		cylinders: p.Cylinders,
		customers: p.Customers,
	}
}

type ServiceImpl struct {
	log       *zap.Logger
	cylinders cylinderdomain.Service
	customers customerdomain.Service
}

func (s *ServiceImpl) IngestCylinders(ctx context.Context, req domain.IngestRequest) (*domain.Result, error) {
	return s.ingest(ctx, req, "cylinder", cylinderColumns, s.ingestCylinderRow)
}

func (s *ServiceImpl) IngestCustomers(ctx context.Context, req domain.IngestRequest) (*domain.Result, error) {
	return s.ingest(ctx, req, "customer", customerColumns, s.ingestCustomerRow)
}

type rowFunc func(ctx context.Context, columns map[string]int, row []string) error

func (s *ServiceImpl) ingest(ctx context.Context, req domain.IngestRequest, entity string, required []string, ingestRow rowFunc) (*domain.Result, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(req.Format) {
	case "csv":
		rows, err = readCSV(req)
	case "xlsx":
		rows, err = readXLSX(req)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyFile
	}

	columns, err := mapColumns(rows[0], required)
	if err != nil {
		return nil, err
	}

	result := &domain.Result{TotalRows: len(rows) - 1}
	for i, row := range rows[1:] {
		// Header is spreadsheet row 1, so data row i lands on row i+2.
		rowNum := i + 2
		if blankRow(row) {
			result.TotalRows--
			continue
		}
		if err := ingestRow(ctx, columns, row); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, domain.RowError{
				Row:     rowNum,
				Message: fmt.Sprintf("Row %d: %s", rowNum, rowMessage(err)),
			})
			continue
		}
		result.SuccessCount++
	}

	s.log.Info("bulk ingest finished",
		zap.String("entity", entity),
		zap.String("filename", req.Filename),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("success_count", result.SuccessCount),
		zap.Int("error_count", result.ErrorCount),
	)
	return result, nil
}

func (s *ServiceImpl) ingestCylinderRow(ctx context.Context, columns map[string]int, row []string) error {
	create := cylinderdomain.CreateCylinderRequest{
		SerialNumber: cell(row, columns, "serial_number"),
		Barcode:      cell(row, columns, "barcode"),
		GasType:      cylinderdomain.GasType(strings.ToLower(cell(row, columns, "gas_type"))),
	}

	rawCapacity := cell(row, columns, "capacity")
	capacity, err := strconv.ParseFloat(rawCapacity, 64)
	if err != nil {
		return fmt.Errorf("capacity %q is not a number", rawCapacity)
	}
	create.Capacity = capacity

	if raw := cell(row, columns, "pressure_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("pressure_rating %q is not a number", raw)
		}
		create.PressureRate = v
	}
	if raw := cell(row, columns, "tare_weight"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("tare_weight %q is not a number", raw)
		}
		create.TareWeight = v
	}
	if raw := cell(row, columns, "status"); raw != "" {
		create.Status = cylinderdomain.Status(strings.ToLower(raw))
	}

	_, err = s.cylinders.Create(ctx, create)
	return err
}

func (s *ServiceImpl) ingestCustomerRow(ctx context.Context, columns map[string]int, row []string) error {
	for _, name := range customerColumns {
		if cell(row, columns, name) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	_, err := s.customers.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:         cell(row, columns, "name"),
		Email:        cell(row, columns, "email"),
		Phone:        cell(row, columns, "phone"),
		Address:      cell(row, columns, "address"),
		City:         cell(row, columns, "city"),
		State:        cell(row, columns, "state"),
		ZipCode:      cell(row, columns, "zip_code"),
		Country:      cell(row, columns, "country"),
		BusinessType: cell(row, columns, "business_type"),
	})
	return err
}

func rowMessage(err error) string {
	switch {
	case errors.Is(err, cylinderdomain.ErrInvalidSerial):
		return "serial_number is required"
	case errors.Is(err, cylinderdomain.ErrInvalidBarcode):
		return "barcode is required"
	case errors.Is(err, cylinderdomain.ErrInvalidGasType):
		return "unknown gas_type"
	case errors.Is(err, cylinderdomain.ErrInvalidCapacity):
		return "capacity must be positive"
	case errors.Is(err, cylinderdomain.ErrInvalidStatus):
		return "unknown status"
	case errors.Is(err, cylinderdomain.ErrSerialTaken):
		return "serial_number already registered"
	case errors.Is(err, cylinderdomain.ErrBarcodeTaken):
		return "barcode already registered"
	case errors.Is(err, customerdomain.ErrInvalidEmail):
		return "email is not valid"
	case errors.Is(err, customerdomain.ErrEmailTaken):
		return "email already registered"
	default:
		return err.Error()
	}
}

func readCSV(req domain.IngestRequest) ([][]string, error) {
	reader := csv.NewReader(req.Reader)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func readXLSX(req domain.IngestRequest) ([][]string, error) {
	file, err := excelize.OpenReader(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("parse xlsx: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyFile
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet: %w", err)
	}
	return rows, nil
}

func mapColumns(header []string, required []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = normalizeColumn(name)
		if name == "" {
			continue
		}
		columns[name] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return columns, nil
}

// normalizeColumn folds a header name to its canonical snake_case form, so
// both "serial_number" and a legacy "serialNumber" land on the same column.
func normalizeColumn(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	var prev rune
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 && prev != '_' {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}

	normalized := b.String()
	if canonical, ok := columnAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
