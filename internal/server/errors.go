package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/gastrak/gastrak/internal/analytics/domain"
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
	"github.com/gastrak/gastrak/internal/authorization"
	bulkdomain "github.com/gastrak/gastrak/internal/bulk/domain"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	filldomain "github.com/gastrak/gastrak/internal/fill/domain"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	maintenancedomain "github.com/gastrak/gastrak/internal/maintenance/domain"
	movementdomain "github.com/gastrak/gastrak/internal/movement/domain"
	transactiondomain "github.com/gastrak/gastrak/internal/transaction/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authorization.ErrInvalidRole):
		return true
	case isAuthValidationError(err),
		isCustomerValidationError(err),
		isLocationValidationError(err),
		isCylinderValidationError(err),
		isMovementValidationError(err),
		isMaintenanceValidationError(err),
		isTransactionValidationError(err),
		isBulkValidationError(err),
		errors.Is(err, analyticsdomain.ErrInvalidRange):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrTokenExpired),
		errors.Is(err, authdomain.ErrUserInactive):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, customerdomain.ErrEmailTaken),
		errors.Is(err, cylinderdomain.ErrSerialTaken),
		errors.Is(err, cylinderdomain.ErrBarcodeTaken),
		errors.Is(err, maintenancedomain.ErrAlreadyCompleted),
		errors.Is(err, transactiondomain.ErrNotPending),
		errors.Is(err, movementdomain.ErrCylinderRetired),
		errors.Is(err, filldomain.ErrCylinderRetired):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, locationdomain.ErrNotFound),
		errors.Is(err, cylinderdomain.ErrNotFound),
		errors.Is(err, movementdomain.ErrNotFound),
		errors.Is(err, maintenancedomain.ErrNotFound),
		errors.Is(err, maintenancedomain.ErrScheduleNotFound),
		errors.Is(err, transactiondomain.ErrNotFound),
		errors.Is(err, filldomain.ErrNotFound),
		errors.Is(err, analyticsdomain.ErrUnknownReport),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	case errors.Is(err, locationdomain.ErrUnknownCustomer),
		errors.Is(err, cylinderdomain.ErrUnknownLocation),
		errors.Is(err, movementdomain.ErrUnknownCylinder),
		errors.Is(err, movementdomain.ErrUnknownLocation),
		errors.Is(err, movementdomain.ErrUnknownCustomer),
		errors.Is(err, maintenancedomain.ErrUnknownCylinder),
		errors.Is(err, transactiondomain.ErrUnknownCustomer),
		errors.Is(err, transactiondomain.ErrUnknownCylinder),
		errors.Is(err, filldomain.ErrUnknownCylinder),
		errors.Is(err, filldomain.ErrUnknownLocation):
		return true
	default:
		return false
	}
}

func isAuthValidationError(err error) bool {
	switch err {
	case authdomain.ErrInvalidEmail,
		authdomain.ErrInvalidRole,
		authdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isCustomerValidationError(err error) bool {
	switch err {
	case customerdomain.ErrInvalidName,
		customerdomain.ErrInvalidEmail,
		customerdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isLocationValidationError(err error) bool {
	switch err {
	case locationdomain.ErrInvalidName,
		locationdomain.ErrInvalidType:
		return true
	default:
		return false
	}
}

func isCylinderValidationError(err error) bool {
	switch err {
	case cylinderdomain.ErrInvalidSerial,
		cylinderdomain.ErrInvalidBarcode,
		cylinderdomain.ErrInvalidGasType,
		cylinderdomain.ErrInvalidCapacity,
		cylinderdomain.ErrInvalidStatus,
		cylinderdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isMovementValidationError(err error) bool {
	switch err {
	case movementdomain.ErrInvalidType,
		movementdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isMaintenanceValidationError(err error) bool {
	switch err {
	case maintenancedomain.ErrInvalidType,
		maintenancedomain.ErrInvalidStatus,
		maintenancedomain.ErrInvalidInterval,
		maintenancedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func isTransactionValidationError(err error) bool {
	switch err {
	case transactiondomain.ErrInvalidType,
		transactiondomain.ErrInvalidStatus,
		transactiondomain.ErrInvalidID,
		transactiondomain.ErrNoItems,
		transactiondomain.ErrInvalidQuantity,
		transactiondomain.ErrInvalidUnitPrice:
		return true
	default:
		return false
	}
}

func isBulkValidationError(err error) bool {
	switch {
	case errors.Is(err, bulkdomain.ErrUnsupportedFormat),
		errors.Is(err, bulkdomain.ErrMissingColumns),
		errors.Is(err, bulkdomain.ErrEmptyFile):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func classifyErrorForLog(err error) string {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return payload.Type
}
