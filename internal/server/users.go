package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
	"github.com/gastrak/gastrak/internal/authorization"
	"github.com/gastrak/gastrak/pkg/db/pagination"
)

func (s *Server) ListUsers(c *gin.Context) {
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	users, err := s.authsvc.List(c.Request.Context(), authdomain.ListUsersRequest{
		Skip:  query.Skip,
		Limit: query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// GetUser allows any user to read their own record; reading others requires
// the user view permission.
func (s *Server) GetUser(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, authdomain.ErrInvalidID)
		return
	}

	actor, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if actor.ID != id {
		if err := s.authzSvc.Authorize(c.Request.Context(), actor.Role, authorization.ObjectUser, authorization.ActionView); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	user, err := s.authsvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

type updateUserRequest struct {
	FullName      *string `json:"full_name"`
	Role          *string `json:"role"`
	PhoneNumber   *string `json:"phone_number"`
	Address       *string `json:"address"`
	LicenseNumber *string `json:"license_number"`
	VehicleID     *string `json:"vehicle_id"`
	Certification *string `json:"certification"`
	IsActive      *bool   `json:"is_active"`
	Password      *string `json:"password"`
}

// UpdateUser lets any user patch their own profile; patching another user, or
// touching role/is_active, requires the user update permission.
func (s *Server) UpdateUser(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, authdomain.ErrInvalidID)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if actor.ID != id || req.Role != nil || req.IsActive != nil {
		if err := s.authzSvc.Authorize(c.Request.Context(), actor.Role, authorization.ObjectUser, authorization.ActionUpdate); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	patch := authdomain.UserPatch{
		FullName:      req.FullName,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		LicenseNumber: req.LicenseNumber,
		VehicleID:     req.VehicleID,
		Certification: req.Certification,
		IsActive:      req.IsActive,
		Password:      req.Password,
	}
	if req.Role != nil {
		role := authdomain.Role(strings.TrimSpace(*req.Role))
		patch.Role = &role
	}

	user, err := s.authsvc.Update(c.Request.Context(), id, patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := user.ID.String()
	s.audit(c, "user.update", "user", &targetID, nil)

	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *Server) DeleteUser(c *gin.Context) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, authdomain.ErrInvalidID)
		return
	}

	if err := s.authsvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := id.String()
	s.audit(c, "user.delete", "user", &targetID, nil)

	c.Status(http.StatusNoContent)
}
