package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	transactiondomain "github.com/gastrak/gastrak/internal/transaction/domain"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

type transactionItemRequest struct {
	CylinderID  string  `json:"cylinder_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type createTransactionRequest struct {
	CustomerID      string                   `json:"customer_id"`
	TransactionType string                   `json:"transaction_type"`
	TransactionDate *time.Time               `json:"transaction_date"`
	Notes           string                   `json:"notes"`
	Items           []transactionItemRequest `json:"items"`
}

func (s *Server) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	customerID, err := parseSnowflakeID(req.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	create := transactiondomain.CreateTransactionRequest{
		CustomerID:      customerID,
		TransactionType: transactiondomain.Type(strings.TrimSpace(req.TransactionType)),
		CreatedByID:     actor.ID,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if req.TransactionDate != nil {
		create.TransactionDate = *req.TransactionDate
	}
	for _, item := range req.Items {
		cylinderID, err := parseOptionalSnowflakeID(item.CylinderID)
		if err != nil {
			AbortWithError(c, newValidationError("items.cylinder_id", "invalid_cylinder_id", "invalid cylinder_id"))
			return
		}
		create.Items = append(create.Items, transactiondomain.ItemInput{
			CylinderID:  cylinderID,
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	resp, err := s.transactionSvc.Create(c.Request.Context(), create)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "transaction.create", "transaction", &targetID, map[string]any{
		"customer_id":      resp.CustomerID.String(),
		"transaction_type": string(resp.TransactionType),
		"total_amount":     resp.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListTransactions(c *gin.Context) {
	var query struct {
		pagination.Pagination
		CustomerID string `form:"customer_id"`
		Type       string `form:"transaction_type"`
		Status     string `form:"status"`
		From       string `form:"from"`
		To         string `form:"to"`
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

	resp, err := s.transactionSvc.List(c.Request.Context(), transactiondomain.ListTransactionsRequest{
		Skip:       query.Skip,
		Limit:      query.Limit,
		CustomerID: customerID,
		Type:       transactiondomain.Type(strings.TrimSpace(query.Type)),
		Status:     transactiondomain.Status(strings.TrimSpace(query.Status)),
		From:       from,
		To:         to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTransaction(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, transactiondomain.ErrInvalidID)
		return
	}

	resp, err := s.transactionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CompleteTransaction(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, transactiondomain.ErrInvalidID)
		return
	}

	resp, err := s.transactionSvc.Complete(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "transaction.complete", "transaction", &targetID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelTransaction(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, transactiondomain.ErrInvalidID)
		return
	}

	resp, err := s.transactionSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := resp.ID.String()
	s.audit(c, "transaction.cancel", "transaction", &targetID, nil)

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
