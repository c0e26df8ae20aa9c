package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	movementdomain "github.com/gastrak/gastrak/internal/movement/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

type recordMovementRequest struct {
	CylinderID     string     `json:"cylinder_id"`
	MovementType   string     `json:"movement_type"`
	FromLocationID string     `json:"from_location_id"`
	ToLocationID   string     `json:"to_location_id"`
	CustomerID     string     `json:"customer_id"`
	MovementDate   *time.Time `json:"movement_date"`
	Notes          string     `json:"notes"`
}

func (s *Server) RecordMovement(c *gin.Context) {
	var req recordMovementRequest
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
	toLocationID, err := parseSnowflakeID(req.ToLocationID)
	if err != nil {
		AbortWithError(c, newValidationError("to_location_id", "invalid_to_location_id", "invalid to_location_id"))
		return
	}
	fromLocationID, err := parseOptionalSnowflakeID(req.FromLocationID)
	if err != nil {
		AbortWithError(c, newValidationError("from_location_id", "invalid_from_location_id", "invalid from_location_id"))
		return
	}
	customerID, err := parseOptionalSnowflakeID(req.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	record := movementdomain.RecordMovementRequest{
		CylinderID:     cylinderID,
		MovementType:   movementdomain.Type(strings.TrimSpace(req.MovementType)),
		FromLocationID: fromLocationID,
		ToLocationID:   toLocationID,
		CustomerID:     customerID,
		MovedByID:      actor.ID,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if req.MovementDate != nil {
		record.MovementDate = *req.MovementDate
	}

	resp, err := s.movementSvc.Record(c.Request.Context(), record)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "movement.create", "movement", &targetID, map[string]any{
		"cylinder_id":   resp.CylinderID.String(),
		"movement_type": string(resp.MovementType),
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListMovements(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CylinderID string `form:"cylinder_id"`
		CustomerID string `form:"customer_id"`
		Type       string `form:"movement_type"`
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
	customerID, err := parseOptionalSnowflakeID(query.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
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

	resp, err := s.movementSvc.List(c.Request.Context(), movementdomain.ListMovementsRequest{
		Skip:       query.Skip,
		Limit:      query.Limit,
		CylinderID: cylinderID,
		CustomerID: customerID,
		Type:       movementdomain.Type(strings.TrimSpace(query.Type)),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMovement(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, movementdomain.ErrInvalidID)
		return
	}

	resp, err := s.movementSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
