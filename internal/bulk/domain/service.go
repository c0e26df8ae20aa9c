package domain

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported_file_format")
	ErrMissingColumns    = errors.New("missing_required_columns")
	ErrEmptyFile         = errors.New("empty_file")
)

// RowError reports a single rejected row. Row is the 1-based spreadsheet
// row number, so the first data row after the header is row 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result summarizes an ingest. Successful rows persist even when other
// rows fail.
type Result struct {
	TotalRows    int        `json:"total_rows"`
	SuccessCount int        `json:"success_count"`
	ErrorCount   int        `json:"error_count"`
	Errors       []RowError `json:"errors"`
}

// IngestRequest carries an uploaded file. Format is the lowercase file
// extension without the dot ("csv" or "xlsx").
type IngestRequest struct {
	Filename string
	Format   string
	Reader   io.Reader
}

type Service interface {
	// IngestCylinders parses the file and registers one cylinder per data
	// row, collecting per-row failures instead of aborting.
	IngestCylinders(ctx context.Context, req IngestRequest) (*Result, error)
	// IngestCustomers does the same for customer rows.
	IngestCustomers(ctx context.Context, req IngestRequest) (*Result, error)
}
