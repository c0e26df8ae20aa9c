package migration

import (
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
	auditdomain "github.com/gastrak/gastrak/internal/audit/domain"
	"github.com/gastrak/gastrak/internal/config"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	filldomain "github.com/gastrak/gastrak/internal/fill/domain"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	maintenancedomain "github.com/gastrak/gastrak/internal/maintenance/domain"
	movementdomain "github.com/gastrak/gastrak/internal/movement/domain"
	"github.com/gastrak/gastrak/internal/seed"
	transactiondomain "github.com/gastrak/gastrak/internal/transaction/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned migrations target postgres; other dialects are
			// for local development and get the schema from the models.
			err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.AccessToken{},
				&customerdomain.Customer{},
				&locationdomain.Location{},
				&cylinderdomain.Cylinder{},
				&movementdomain.Movement{},
				&maintenancedomain.Record{},
				&maintenancedomain.Schedule{},
				&transactiondomain.Transaction{},
				&transactiondomain.Item{},
				&filldomain.FillRecord{},
				&auditdomain.AuditRecord{},
			)
			if err != nil {
				return err
			}
		}

		return seed.EnsureAdmin(conn, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	}),
)
