package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
	authrepo "github.com/gastrak/gastrak/internal/auth/repository"
	authservice "github.com/gastrak/gastrak/internal/auth/service"
	"github.com/gastrak/gastrak/internal/authorization"
	"github.com/gastrak/gastrak/internal/config"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupUserHandlers(t *testing.T) *Server {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &authdomain.AccessToken{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	authsvc := authservice.New(authservice.Params{
		DB:     db,
		Log:    zap.NewNop(),
		Cfg:    config.Config{TokenTTLMinutes: 60},
		GenID:  node,
		Repo:   authrepo.Provide(),
		Tokens: authrepo.ProvideTokens(),
	})

	enforcer, err := authorization.NewEnforcer(db)
	require.NoError(t, err)
	authzSvc := authorization.NewService(authorization.Params{
		DB:       db,
		Log:      zap.NewNop(),
		Enforcer: enforcer,
	})

	return &Server{
		authsvc:  authsvc,
		authzSvc: authzSvc,
	}
}

func registerTestUser(t *testing.T, s *Server, email string, role authdomain.Role) authdomain.User {
	t.Helper()

	user, err := s.authsvc.Register(context.Background(), authdomain.RegisterRequest{
		Email:    email,
		Password: "s3cret-pass",
		FullName: "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func patchUser(t *testing.T, s *Server, actor authdomain.User, id snowflake.ID, body string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.Use(func(c *gin.Context) {
		c.Set(contextUserKey, actor)
		c.Next()
	})
	r.PATCH("/users/:id", s.UpdateUser)

	req := httptest.NewRequest(http.MethodPatch, "/users/"+id.String(), bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateUserSelfAccess(t *testing.T) {
	s := setupUserHandlers(t)

	driver := registerTestUser(t, s, "driver@example.com", authdomain.RoleDriver)
	technician := registerTestUser(t, s, "tech@example.com", authdomain.RoleTechnician)

	// A user can patch their own profile without the user update permission.
	w := patchUser(t, s, driver, driver.ID, `{"full_name":"Dana Delivers","phone_number":"0812"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data authdomain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Dana Delivers", resp.Data.FullName)
	require.Equal(t, "0812", resp.Data.PhoneNumber)

	// Patching someone else's record still requires the permission.
	w = patchUser(t, s, driver, technician.ID, `{"full_name":"Nope"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateUserPrivilegedFieldsAdminOnly(t *testing.T) {
	s := setupUserHandlers(t)

	driver := registerTestUser(t, s, "driver@example.com", authdomain.RoleDriver)
	admin := registerTestUser(t, s, "admin@example.com", authdomain.RoleAdmin)

	// Role and activation changes are locked down even on the own record.
	w := patchUser(t, s, driver, driver.ID, `{"role":"admin"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = patchUser(t, s, driver, driver.ID, `{"is_active":false}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = patchUser(t, s, admin, driver.ID, `{"role":"technician","is_active":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data authdomain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, authdomain.RoleTechnician, resp.Data.Role)
	require.False(t, resp.Data.IsActive)
}
