package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	filldomain "github.com/gastrak/gastrak/internal/fill/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

type recordFillRequest struct {
	CylinderID   string     `json:"cylinder_id"`
	LocationID   string     `json:"location_id"`
	FillDate     *time.Time `json:"fill_date"`
	FillPressure float64    `json:"fill_pressure"`
	FillWeight   float64    `json:"fill_weight"`
	Notes        string     `json:"notes"`
}

func (s *Server) RecordFill(c *gin.Context) {
	var req recordFillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	cylinderID, err := parseSnowflakeID(req.CylinderID)
	if err != nil {
		AbortWithError(c, newValidationError("cylinder_id", "invalid_cylinder_id", "invalid cylinder_id"))
		return
	}
	locationID, err := parseOptionalSnowflakeID(req.LocationID)
	if err != nil {
		AbortWithError(c, newValidationError("location_id", "invalid_location_id", "invalid location_id"))
		return
	}

	record := filldomain.RecordFillRequest{
		CylinderID:   cylinderID,
		LocationID:   locationID,
		FilledByID:   actor.ID,
		FillPressure: req.FillPressure,
		FillWeight:   req.FillWeight,
		Notes:        strings.TrimSpace(req.Notes),
	}
	if req.FillDate != nil {
		record.FillDate = *req.FillDate
	}

	resp, err := s.fillSvc.Record(c.Request.Context(), record)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "fill.create", "fill_record", &targetID, map[string]any{
		"cylinder_id": resp.CylinderID.String(),
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListFills(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CylinderID string `form:"cylinder_id"`
		From       string `form:"from"`
		To         string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cylinderID, err := parseOptionalSnowflakeID(query.CylinderID)
	if err != nil {
		AbortWithError(c, newValidationError("cylinder_id", "invalid_cylinder_id", "invalid cylinder_id"))
		return
	}
	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.fillSvc.List(c.Request.Context(), filldomain.ListFillsRequest{
		Skip:       query.Skip,
		Limit:      query.Limit,
		CylinderID: cylinderID,
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
