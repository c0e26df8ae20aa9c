package authorization

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	auditdomain "github.com/gastrak/gastrak/internal/audit/domain"
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectUser        = "user"
	ObjectCustomer    = "customer"
	ObjectLocation    = "location"
	ObjectCylinder    = "cylinder"
	ObjectMovement    = "movement"
	ObjectMaintenance = "maintenance"
	ObjectTransaction = "transaction"
	ObjectFill        = "fill"
	ObjectAnalytics   = "analytics"
	ObjectBulk        = "bulk"
	ObjectAuditLog    = "audit_log"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	ActionTransactionComplete = "transaction.complete"
	ActionMaintenanceComplete = "maintenance.complete"
	ActionMaintenanceSchedule = "maintenance.schedule"
	ActionAnalyticsDashboard  = "analytics.dashboard"
	ActionAnalyticsReport     = "analytics.report"
	ActionBulkIngest          = "bulk.ingest"
)

var (
	ErrForbidden   = errors.New("authorization_forbidden")
	ErrInvalidRole = errors.New("authorization_invalid_role")
)

type Service interface {
	Authorize(ctx context.Context, role authdomain.Role, object string, action string) error
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	AuditSvc auditdomain.Service `optional:"true"`
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	auditSvc auditdomain.Service
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		auditSvc: p.AuditSvc,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role authdomain.Role, object string, action string) error {
	if !authdomain.ValidRole(role) {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	action = strings.TrimSpace(action)
	if object == "" || action == "" {
		return ErrForbidden
	}

	subject := subjectFor(role)
	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, role, object, action)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) auditDenied(ctx context.Context, role authdomain.Role, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.Log(ctx, auditdomain.Entry{
		Action:     "authorization.denied",
		TargetType: object,
		Metadata: map[string]any{
			"role":   string(role),
			"action": action,
		},
	}); err != nil {
		s.log.Warn("audit log failed", zap.Error(err))
	}
}

func subjectFor(role authdomain.Role) string {
	return fmt.Sprintf("role:%s", strings.ToLower(string(role)))
}

// seedPolicies installs the declarative (role, object, action) table. All role
// checks in the API flow through these rows; handlers never test roles inline.
func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	mutations := [][2]string{
		{ObjectCustomer, ActionCreate}, {ObjectCustomer, ActionUpdate},
		{ObjectLocation, ActionCreate}, {ObjectLocation, ActionUpdate},
		{ObjectCylinder, ActionCreate}, {ObjectCylinder, ActionUpdate},
		{ObjectTransaction, ActionCreate}, {ObjectTransaction, ActionTransactionComplete},
		{ObjectMaintenance, ActionMaintenanceSchedule},
		{ObjectAnalytics, ActionAnalyticsDashboard}, {ObjectAnalytics, ActionAnalyticsReport},
		{ObjectBulk, ActionBulkIngest},
	}

	policies := [][]string{
		// Movement recording additionally allows drivers.
		{"role:driver", ObjectMovement, ActionCreate},
		// Technicians work maintenance and fills.
		{"role:technician", ObjectMaintenance, ActionCreate},
		{"role:technician", ObjectMaintenance, ActionUpdate},
		{"role:technician", ObjectMaintenance, ActionMaintenanceComplete},
		{"role:technician", ObjectFill, ActionCreate},

		// Admin-only surfaces.
		{"role:admin", ObjectUser, ActionView},
		{"role:admin", ObjectUser, ActionUpdate},
		{"role:admin", ObjectUser, ActionDelete},
		{"role:admin", ObjectAuditLog, ActionView},
	}

	// Every authenticated role may read the fleet collections.
	readableObjects := []string{
		ObjectCustomer, ObjectLocation, ObjectCylinder,
		ObjectMovement, ObjectMaintenance, ObjectTransaction, ObjectFill,
	}
	for _, role := range []string{"role:admin", "role:manager", "role:driver", "role:technician", "role:customer"} {
		for _, object := range readableObjects {
			policies = append(policies, []string{role, object, ActionView})
		}
	}

	// admin and manager share the mutation table; deletes stay admin-only.
	for _, pair := range mutations {
		policies = append(policies, []string{"role:admin", pair[0], pair[1]})
		policies = append(policies, []string{"role:manager", pair[0], pair[1]})
	}
	for _, role := range []string{"role:admin", "role:manager"} {
		policies = append(policies,
			[]string{role, ObjectMovement, ActionCreate},
			[]string{role, ObjectMaintenance, ActionCreate},
			[]string{role, ObjectMaintenance, ActionUpdate},
			[]string{role, ObjectMaintenance, ActionMaintenanceComplete},
			[]string{role, ObjectFill, ActionCreate},
		)
	}
	for _, object := range []string{
		ObjectCustomer, ObjectLocation, ObjectCylinder,
		ObjectMovement, ObjectMaintenance, ObjectTransaction, ObjectFill,
	} {
		policies = append(policies, []string{"role:admin", object, ActionDelete})
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}
	return nil
}
