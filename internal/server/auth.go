package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
)

type registerRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	FullName      string  `json:"full_name"`
	Role          string  `json:"role"`
	PhoneNumber   string  `json:"phone_number"`
	Address       string  `json:"address"`
	LicenseNumber *string `json:"license_number"`
	VehicleID     *string `json:"vehicle_id"`
	Certification *string `json:"certification"`
}

func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Email:         strings.TrimSpace(req.Email),
		Password:      req.Password,
		FullName:      strings.TrimSpace(req.FullName),
		Role:          authdomain.Role(req.Role),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Address:       strings.TrimSpace(req.Address),
		LicenseNumber: req.LicenseNumber,
		VehicleID:     req.VehicleID,
		Certification: req.Certification,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	targetID := user.ID.String()
	s.audit(c, "user.register", "user", &targetID, map[string]any{
		"email": user.Email,
		"role":  string(user.Role),
	})

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        authdomain.User `json:"user"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.RawToken,
		TokenType:   "bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        result.User,
	})
}

func (s *Server) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
