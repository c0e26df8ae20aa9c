package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	maintenancedomain "github.com/gastrak/gastrak/internal/maintenance/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

type createMaintenanceRequest struct {
	CylinderID      string     `json:"cylinder_id"`
	MaintenanceType string     `json:"maintenance_type"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	Cost            float64    `json:"cost"`
	Description     string     `json:"description"`
	Notes           string     `json:"notes"`
}

func (s *Server) CreateMaintenanceRecord(c *gin.Context) {
	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cylinderID, err := parseSnowflakeID(req.CylinderID)
	if err != nil {
		AbortWithError(c, newValidationError("cylinder_id", "invalid_cylinder_id", "invalid cylinder_id"))
		return
	}

	create := maintenancedomain.CreateRecordRequest{
		CylinderID:      cylinderID,
		MaintenanceType: maintenancedomain.Type(strings.TrimSpace(req.MaintenanceType)),
		Cost:            req.Cost,
		Description:     strings.TrimSpace(req.Description),
		Notes:           strings.TrimSpace(req.Notes),
	}
	if req.ScheduledDate != nil {
		create.ScheduledDate = *req.ScheduledDate
	}

	resp, err := s.maintenanceSvc.CreateRecord(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "maintenance.create", "maintenance_record", &targetID, map[string]any{
		"cylinder_id":      resp.CylinderID.String(),
		"maintenance_type": string(resp.MaintenanceType),
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListMaintenanceRecords(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CylinderID string `form:"cylinder_id"`
		Type       string `form:"maintenance_type"`
		Status     string `form:"status"`
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

	resp, err := s.maintenanceSvc.ListRecords(c.Request.Context(), maintenancedomain.ListRecordsRequest{
		Skip:       query.Skip,
		Limit:      query.Limit,
		CylinderID: cylinderID,
		Type:       maintenancedomain.Type(strings.TrimSpace(query.Type)),
		Status:     maintenancedomain.RecordStatus(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMaintenanceRecord(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, maintenancedomain.ErrInvalidID)
		return
	}

	resp, err := s.maintenanceSvc.GetRecord(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateMaintenanceRequest struct {
	Status        *string    `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Cost          *float64   `json:"cost"`
	Description   *string    `json:"description"`
	Notes         *string    `json:"notes"`
}

func (s *Server) UpdateMaintenanceRecord(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, maintenancedomain.ErrInvalidID)
		return
	}

	var req updateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := maintenancedomain.RecordPatch{
		ScheduledDate: req.ScheduledDate,
		Cost:          req.Cost,
		Description:   req.Description,
		Notes:         req.Notes,
	}
	if req.Status != nil {
		status := maintenancedomain.RecordStatus(strings.TrimSpace(*req.Status))
		patch.Status = &status
	}

	resp, err := s.maintenanceSvc.UpdateRecord(c.Request.Context(), id, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "maintenance.update", "maintenance_record", &targetID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type completeMaintenanceRequest struct {
	CompletedDate *time.Time `json:"completed_date"`
	Cost          *float64   `json:"cost"`
	Notes         string     `json:"notes"`
}

func (s *Server) CompleteMaintenanceRecord(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, maintenancedomain.ErrInvalidID)
		return
	}

	actor, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req completeMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.maintenanceSvc.CompleteRecord(c.Request.Context(), id, maintenancedomain.CompleteRecordRequest{
		PerformedByID: actor.ID,
		CompletedDate: req.CompletedDate,
		Cost:          req.Cost,
		Notes:         strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "maintenance.complete", "maintenance_record", &targetID, map[string]any{
		"cylinder_id":      resp.CylinderID.String(),
		"maintenance_type": string(resp.MaintenanceType),
	})

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpcomingMaintenance(c *gin.Context) {
	days := 30
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			AbortWithError(c, newValidationError("days", "invalid_days", "invalid days"))
			return
		}
		days = parsed
	}

	resp, err := s.maintenanceSvc.Upcoming(c.Request.Context(), days)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) OverdueMaintenance(c *gin.Context) {
	resp, err := s.maintenanceSvc.Overdue(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createScheduleRequest struct {
	CylinderID      string     `json:"cylinder_id"`
	MaintenanceType string     `json:"maintenance_type"`
	IntervalDays    int        `json:"interval_days"`
	NextDueDate     *time.Time `json:"next_due_date"`
}

func (s *Server) CreateMaintenanceSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cylinderID, err := parseSnowflakeID(req.CylinderID)
	if err != nil {
		AbortWithError(c, newValidationError("cylinder_id", "invalid_cylinder_id", "invalid cylinder_id"))
		return
	}

	create := maintenancedomain.CreateScheduleRequest{
		CylinderID:      cylinderID,
		MaintenanceType: maintenancedomain.Type(strings.TrimSpace(req.MaintenanceType)),
		IntervalDays:    req.IntervalDays,
	}
	if req.NextDueDate != nil {
		create.NextDueDate = *req.NextDueDate
	}

	resp, err := s.maintenanceSvc.CreateSchedule(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "maintenance.schedule", "maintenance_schedule", &targetID, nil)

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListMaintenanceSchedules(c *gin.Context) {
	cylinderID, err := parseOptionalSnowflakeID(c.Query("cylinder_id"))
	if err != nil {
		AbortWithError(c, newValidationError("cylinder_id", "invalid_cylinder_id", "invalid cylinder_id"))
		return
	}

	resp, err := s.maintenanceSvc.ListSchedules(c.Request.Context(), cylinderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
