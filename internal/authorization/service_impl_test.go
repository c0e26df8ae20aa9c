package authorization

import (
	"context"
	"fmt"
	"testing"

	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAuthorization(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)

	return NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		Enforcer: enforcer,
	})
}

func TestAuthorizeSeededPolicies(t *testing.T) {
	svc := setupAuthorization(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		role    authdomain.Role
		object  string
		action  string
		allowed bool
	}{
		{"driver records movement", authdomain.RoleDriver, ObjectMovement, ActionCreate, true},
		{"driver views cylinders", authdomain.RoleDriver, ObjectCylinder, ActionView, true},
		{"driver cannot delete customer", authdomain.RoleDriver, ObjectCustomer, ActionDelete, false},
		{"driver cannot create cylinder", authdomain.RoleDriver, ObjectCylinder, ActionCreate, false},
		{"technician completes maintenance", authdomain.RoleTechnician, ObjectMaintenance, ActionMaintenanceComplete, true},
		{"technician records fill", authdomain.RoleTechnician, ObjectFill, ActionCreate, true},
		{"technician cannot ingest bulk", authdomain.RoleTechnician, ObjectBulk, ActionBulkIngest, false},
		{"manager creates transaction", authdomain.RoleManager, ObjectTransaction, ActionCreate, true},
		{"manager completes transaction", authdomain.RoleManager, ObjectTransaction, ActionTransactionComplete, true},
		{"manager cannot delete cylinder", authdomain.RoleManager, ObjectCylinder, ActionDelete, false},
		{"manager cannot list users", authdomain.RoleManager, ObjectUser, ActionView, false},
		{"customer views transactions", authdomain.RoleCustomer, ObjectTransaction, ActionView, true},
		{"customer cannot record movement", authdomain.RoleCustomer, ObjectMovement, ActionCreate, false},
		{"admin deletes customer", authdomain.RoleAdmin, ObjectCustomer, ActionDelete, true},
		{"admin views audit log", authdomain.RoleAdmin, ObjectAuditLog, ActionView, true},
		{"admin runs reports", authdomain.RoleAdmin, ObjectAnalytics, ActionAnalyticsReport, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Authorize(ctx, tc.role, tc.object, tc.action)
			if tc.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeInvalidRole(t *testing.T) {
	svc := setupAuthorization(t)
	ctx := context.Background()

	err := svc.Authorize(ctx, authdomain.Role("superuser"), ObjectCylinder, ActionView)
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthorizeBlankObjectOrAction(t *testing.T) {
	svc := setupAuthorization(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.Authorize(ctx, authdomain.RoleAdmin, "", ActionView), ErrForbidden)
	require.ErrorIs(t, svc.Authorize(ctx, authdomain.RoleAdmin, ObjectCylinder, " "), ErrForbidden)
}
