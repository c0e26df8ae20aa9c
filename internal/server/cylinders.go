package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

type createCylinderRequest struct {
	SerialNumber       string     `json:"serial_number"`
	Barcode            string     `json:"barcode"`
	GasType            string     `json:"gas_type"`
	Capacity           float64    `json:"capacity"`
	PressureRating     float64    `json:"pressure_rating"`
	TareWeight         float64    `json:"tare_weight"`
	Status             string     `json:"status"`
	CurrentLocationID  string     `json:"current_location_id"`
	ManufactureDate    *time.Time `json:"manufacture_date"`
	LastInspectionDate *time.Time `json:"last_inspection_date"`
	NextInspectionDate *time.Time `json:"next_inspection_date"`
	LastHydroTestDate  *time.Time `json:"last_hydro_test_date"`
	NextHydroTestDate  *time.Time `json:"next_hydro_test_date"`
}

func (s *Server) CreateCylinder(c *gin.Context) {
	var req createCylinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	locationID, err := parseOptionalSnowflakeID(req.CurrentLocationID)
	if err != nil {
		AbortWithError(c, newValidationError("current_location_id", "invalid_current_location_id", "invalid current_location_id"))
		return
	}

	resp, err := s.cylinderSvc.Create(c.Request.Context(), cylinderdomain.CreateCylinderRequest{
		SerialNumber:       strings.TrimSpace(req.SerialNumber),
		Barcode:            strings.TrimSpace(req.Barcode),
		GasType:            cylinderdomain.GasType(strings.ToLower(strings.TrimSpace(req.GasType))),
		Capacity:           req.Capacity,
		PressureRate:       req.PressureRating,
		TareWeight:         req.TareWeight,
		Status:             cylinderdomain.Status(strings.TrimSpace(req.Status)),
		CurrentLocationID:  locationID,
		ManufactureDate:    req.ManufactureDate,
		LastInspectionDate: req.LastInspectionDate,
		NextInspectionDate: req.NextInspectionDate,
		LastHydroTestDate:  req.LastHydroTestDate,
		NextHydroTestDate:  req.NextHydroTestDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "cylinder.create", "cylinder", &targetID, map[string]any{
		"serial_number": resp.SerialNumber,
		"gas_type":      string(resp.GasType),
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCylinders(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status     string `form:"status"`
		GasType    string `form:"gas_type"`
		LocationID string `form:"location_id"`
		CustomerID string `form:"customer_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	locationID, err := parseOptionalSnowflakeID(query.LocationID)
	if err != nil {
		AbortWithError(c, newValidationError("location_id", "invalid_location_id", "invalid location_id"))
		return
	}
	customerID, err := parseOptionalSnowflakeID(query.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	resp, err := s.cylinderSvc.List(c.Request.Context(), cylinderdomain.ListCylindersRequest{
		Skip:       query.Skip,
		Limit:      query.Limit,
		Status:     cylinderdomain.Status(strings.TrimSpace(query.Status)),
		GasType:    cylinderdomain.GasType(strings.TrimSpace(query.GasType)),
		LocationID: locationID,
		CustomerID: customerID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// SearchCylinders resolves ?q= against id, serial number, then barcode.
func (s *Server) SearchCylinders(c *gin.Context) {
	identifier := strings.TrimSpace(c.Query("q"))
	if identifier == "" {
		AbortWithError(c, newValidationError("q", "invalid_query", "query is required"))
		return
	}

	resp, err := s.cylinderSvc.Search(c.Request.Context(), identifier)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCylinder(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, cylinderdomain.ErrInvalidID)
		return
	}

	resp, err := s.cylinderSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCylinderRequest struct {
	GasType            *string    `json:"gas_type"`
	Capacity           *float64   `json:"capacity"`
	PressureRating     *float64   `json:"pressure_rating"`
	TareWeight         *float64   `json:"tare_weight"`
	Status             *string    `json:"status"`
	CurrentLocationID  *string    `json:"current_location_id"`
	CurrentCustomerID  *string    `json:"current_customer_id"`
	LastInspectionDate *time.Time `json:"last_inspection_date"`
	NextInspectionDate *time.Time `json:"next_inspection_date"`
	LastHydroTestDate  *time.Time `json:"last_hydro_test_date"`
	NextHydroTestDate  *time.Time `json:"next_hydro_test_date"`
}

func (s *Server) UpdateCylinder(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, cylinderdomain.ErrInvalidID)
		return
	}

	var req updateCylinderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := cylinderdomain.CylinderPatch{
		Capacity:           req.Capacity,
		PressureRate:       req.PressureRating,
		TareWeight:         req.TareWeight,
		LastInspectionDate: req.LastInspectionDate,
		NextInspectionDate: req.NextInspectionDate,
		LastHydroTestDate:  req.LastHydroTestDate,
		NextHydroTestDate:  req.NextHydroTestDate,
	}
	if req.GasType != nil {
		gasType := cylinderdomain.GasType(strings.ToLower(strings.TrimSpace(*req.GasType)))
		patch.GasType = &gasType
	}
	if req.Status != nil {
		status := cylinderdomain.Status(strings.TrimSpace(*req.Status))
		patch.Status = &status
	}
	if req.CurrentLocationID != nil {
		locationID, err := parseSnowflakeID(*req.CurrentLocationID)
		if err != nil {
			AbortWithError(c, newValidationError("current_location_id", "invalid_current_location_id", "invalid current_location_id"))
			return
		}
		patch.CurrentLocationID = &locationID
	}
	if req.CurrentCustomerID != nil {
		customerID, err := parseSnowflakeID(*req.CurrentCustomerID)
		if err != nil {
			AbortWithError(c, newValidationError("current_customer_id", "invalid_current_customer_id", "invalid current_customer_id"))
			return
		}
		patch.CurrentCustomerID = &customerID
	}

	resp, err := s.cylinderSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "cylinder.update", "cylinder", &targetID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCylinder(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, cylinderdomain.ErrInvalidID)
		return
	}

	if err := s.cylinderSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := id.String()
	s.audit(c, "cylinder.delete", "cylinder", &targetID, nil)

	c.Status(http.StatusNoContent)
}
