package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

type createCustomerRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zip_code"`
	Country      string  `json:"country"`
	BusinessType string  `json:"business_type"`
	TaxID        string  `json:"tax_id"`
	CreditLimit  float64 `json:"credit_limit"`
	PaymentTerms string  `json:"payment_terms"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		ZipCode:      strings.TrimSpace(req.ZipCode),
		Country:      strings.TrimSpace(req.Country),
		BusinessType: strings.TrimSpace(req.BusinessType),
		TaxID:        strings.TrimSpace(req.TaxID),
		CreditLimit:  req.CreditLimit,
		PaymentTerms: strings.TrimSpace(req.PaymentTerms),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "customer.create", "customer", &targetID, map[string]any{
		"name":  resp.Name,
		"email": resp.Email,
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name   string `form:"name"`
		Active string `form:"active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomersRequest{
		Skip:   query.Skip,
		Limit:  query.Limit,
		Name:   strings.TrimSpace(query.Name),
		Active: active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomer(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, customerdomain.ErrInvalidID)
		return
	}

	resp, err := s.customerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCustomerRequest struct {
	Name         *string  `json:"name"`
	Phone        *string  `json:"phone"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	ZipCode      *string  `json:"zip_code"`
	Country      *string  `json:"country"`
	BusinessType *string  `json:"business_type"`
	TaxID        *string  `json:"tax_id"`
	CreditLimit  *float64 `json:"credit_limit"`
	PaymentTerms *string  `json:"payment_terms"`
	IsActive     *bool    `json:"is_active"`
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, customerdomain.ErrInvalidID)
		return
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), id, customerdomain.CustomerPatch{
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		BusinessType: req.BusinessType,
		TaxID:        req.TaxID,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: req.PaymentTerms,
		IsActive:     req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "customer.update", "customer", &targetID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, customerdomain.ErrInvalidID)
		return
	}

	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := id.String()
	s.audit(c, "customer.delete", "customer", &targetID, nil)

	c.Status(http.StatusNoContent)
}
