package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
)

const (
	contextUserKey = "current_user"

	bearerPrefix = "Bearer "
)

// AuthRequired resolves the bearer token to a user and stores it on the
// request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return authdomain.User{}, false
	}
	user, ok := value.(authdomain.User)
	return user, ok
}
