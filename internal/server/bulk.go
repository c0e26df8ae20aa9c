package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	bulkdomain "github.com/gastrak/gastrak/internal/bulk/domain"
)

type ingestFunc func(c *gin.Context, req bulkdomain.IngestRequest) (*bulkdomain.Result, error)

// BulkIngestCylinders accepts a multipart "file" field holding a CSV or
// XLSX sheet of cylinders.
func (s *Server) BulkIngestCylinders(c *gin.Context) {
	s.bulkIngest(c, "cylinder", func(c *gin.Context, req bulkdomain.IngestRequest) (*bulkdomain.Result, error) {
		return s.bulkSvc.IngestCylinders(c.Request.Context(), req)
	})
}

// BulkIngestCustomers is the customer-sheet counterpart.
func (s *Server) BulkIngestCustomers(c *gin.Context) {
	s.bulkIngest(c, "customer", func(c *gin.Context, req bulkdomain.IngestRequest) (*bulkdomain.Result, error) {
		return s.bulkSvc.IngestCustomers(c.Request.Context(), req)
	})
}

func (s *Server) bulkIngest(c *gin.Context, entity string, ingest ingestFunc) {
	header, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	defer file.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	result, err := ingest(c, bulkdomain.IngestRequest{
		Filename: header.Filename,
		Format:   format,
		Reader:   file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "bulk.ingest", entity, nil, map[string]any{
		"filename":      header.Filename,
		"total_rows":    result.TotalRows,
		"success_count": result.SuccessCount,
		"error_count":   result.ErrorCount,
	})

	// Successful rows are already persisted, but any row failure marks the
	// call as failed so callers inspect the per-row errors.
	status := http.StatusOK
	if result.ErrorCount > 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"data": result})
}
