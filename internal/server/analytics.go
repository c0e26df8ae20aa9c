package server

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/gastrak/gastrak/internal/analytics/domain"
)

func (s *Server) AnalyticsDashboard(c *gin.Context) {
	resp, err := s.analyticsSvc.Dashboard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// AnalyticsReport streams a date-bounded CSV export.
func (s *Server) AnalyticsReport(c *gin.Context) {
	kind := analyticsdomain.ReportKind(strings.TrimSpace(c.Param("kind")))

	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil || from == nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil || to == nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	report, err := s.analyticsSvc.Report(c.Request.Context(), analyticsdomain.ReportRequest{
		Kind: kind,
		From: *from,
		To:   *to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(report.Header)
	for _, row := range report.Rows {
		_ = writer.Write(row)
	}
	writer.Flush()
}
