package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

type createLocationRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
	IsPrimary  bool   `json:"is_primary"`
}

func (s *Server) CreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, err := parseOptionalSnowflakeID(req.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	resp, err := s.locationSvc.Create(c.Request.Context(), locationdomain.CreateLocationRequest{
		CustomerID: customerID,
		Name:       strings.TrimSpace(req.Name),
		Type:       locationdomain.LocationType(strings.TrimSpace(req.Type)),
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		ZipCode:    strings.TrimSpace(req.ZipCode),
		Country:    strings.TrimSpace(req.Country),
		IsPrimary:  req.IsPrimary,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "location.create", "location", &targetID, map[string]any{
		"name": resp.Name,
		"type": string(resp.Type),
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListLocations(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerID string `form:"customer_id"`
		Type       string `form:"type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, err := parseOptionalSnowflakeID(query.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	resp, err := s.locationSvc.List(c.Request.Context(), locationdomain.ListLocationsRequest{
		Skip:       query.Skip,
		Limit:      query.Limit,
		CustomerID: customerID,
		Type:       locationdomain.LocationType(strings.TrimSpace(query.Type)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLocation(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, locationdomain.ErrNotFound)
		return
	}

	resp, err := s.locationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateLocationRequest struct {
	Name      *string `json:"name"`
	Type      *string `json:"type"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
	Country   *string `json:"country"`
	IsPrimary *bool   `json:"is_primary"`
}

func (s *Server) UpdateLocation(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, locationdomain.ErrNotFound)
		return
	}

	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := locationdomain.LocationPatch{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsPrimary: req.IsPrimary,
	}
	if req.Type != nil {
		locationType := locationdomain.LocationType(strings.TrimSpace(*req.Type))
		patch.Type = &locationType
	}

	resp, err := s.locationSvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "location.update", "location", &targetID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteLocation(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, locationdomain.ErrNotFound)
		return
	}

	if err := s.locationSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := id.String()
	s.audit(c, "location.delete", "location", &targetID, nil)

	c.Status(http.StatusNoContent)
}
