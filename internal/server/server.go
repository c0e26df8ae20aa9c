package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/gastrak/gastrak/internal/analytics"
	analyticsdomain "github.com/gastrak/gastrak/internal/analytics/domain"
	"github.com/gastrak/gastrak/internal/audit"
	auditdomain "github.com/gastrak/gastrak/internal/audit/domain"
	"github.com/gastrak/gastrak/internal/auth"
	authdomain "github.com/gastrak/gastrak/internal/auth/domain"
	"github.com/gastrak/gastrak/internal/authorization"
	"github.com/gastrak/gastrak/internal/bulk"
	bulkdomain "github.com/gastrak/gastrak/internal/bulk/domain"
	"github.com/gastrak/gastrak/internal/config"
	"github.com/gastrak/gastrak/internal/customer"
	customerdomain "github.com/gastrak/gastrak/internal/customer/domain"
	"github.com/gastrak/gastrak/internal/cylinder"
	cylinderdomain "github.com/gastrak/gastrak/internal/cylinder/domain"
	"github.com/gastrak/gastrak/internal/fill"
	filldomain "github.com/gastrak/gastrak/internal/fill/domain"
	"github.com/gastrak/gastrak/internal/location"
	locationdomain "github.com/gastrak/gastrak/internal/location/domain"
	"github.com/gastrak/gastrak/internal/maintenance"
	maintenancedomain "github.com/gastrak/gastrak/internal/maintenance/domain"
	"github.com/gastrak/gastrak/internal/movement"
	movementdomain "github.com/gastrak/gastrak/internal/movement/domain"
	obslogger "github.com/gastrak/gastrak/internal/observability/logger"
	obsmetrics "github.com/gastrak/gastrak/internal/observability/metrics"
	obstracing "github.com/gastrak/gastrak/internal/observability/tracing"
	"github.com/gastrak/gastrak/internal/transaction"
	transactiondomain "github.com/gastrak/gastrak/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	audit.Module,
	auth.Module,
	customer.Module,
	location.Module,
	cylinder.Module,
	movement.Module,
	maintenance.Module,
	transaction.Module,
	fill.Module,
	analytics.Module,
	bulk.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Log:             log,
		Debug:           !cfg.IsProduction(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	genID          *snowflake.Node
	authsvc        authdomain.Service
	authzSvc       authorization.Service
	auditSvc       auditdomain.Service
	customerSvc    customerdomain.Service
	locationSvc    locationdomain.Service
	cylinderSvc    cylinderdomain.Service
	movementSvc    movementdomain.Service
	maintenanceSvc maintenancedomain.Service
	transactionSvc transactiondomain.Service
	fillSvc        filldomain.Service
	analyticsSvc   analyticsdomain.Service
	bulkSvc        bulkdomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	Authsvc        authdomain.Service
	AuthzSvc       authorization.Service
	AuditSvc       auditdomain.Service
	CustomerSvc    customerdomain.Service
	LocationSvc    locationdomain.Service
	CylinderSvc    cylinderdomain.Service
	MovementSvc    movementdomain.Service
	MaintenanceSvc maintenancedomain.Service
	TransactionSvc transactiondomain.Service
	FillSvc        filldomain.Service
	AnalyticsSvc   analyticsdomain.Service
	BulkSvc        bulkdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		authsvc:        p.Authsvc,
		authzSvc:       p.AuthzSvc,
		auditSvc:       p.AuditSvc,
		customerSvc:    p.CustomerSvc,
		locationSvc:    p.LocationSvc,
		cylinderSvc:    p.CylinderSvc,
		movementSvc:    p.MovementSvc,
		maintenanceSvc: p.MaintenanceSvc,
		transactionSvc: p.TransactionSvc,
		fillSvc:        p.FillSvc,
		analyticsSvc:   p.AnalyticsSvc,
		bulkSvc:        p.BulkSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	users := api.Group("/users")
	{
		users.GET("", s.authorizeAction(authorization.ObjectUser, authorization.ActionView), s.ListUsers)
		users.GET("/:id", s.GetUser)
		users.PATCH("/:id", s.UpdateUser)
		users.DELETE("/:id", s.authorizeAction(authorization.ObjectUser, authorization.ActionDelete), s.DeleteUser)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", s.authorizeAction(authorization.ObjectCustomer, authorization.ActionCreate), s.CreateCustomer)
		customers.GET("", s.authorizeAction(authorization.ObjectCustomer, authorization.ActionView), s.ListCustomers)
		customers.GET("/:id", s.authorizeAction(authorization.ObjectCustomer, authorization.ActionView), s.GetCustomer)
		customers.PATCH("/:id", s.authorizeAction(authorization.ObjectCustomer, authorization.ActionUpdate), s.UpdateCustomer)
		customers.DELETE("/:id", s.authorizeAction(authorization.ObjectCustomer, authorization.ActionDelete), s.DeleteCustomer)
	}

	locations := api.Group("/locations")
	{
		locations.POST("", s.authorizeAction(authorization.ObjectLocation, authorization.ActionCreate), s.CreateLocation)
		locations.GET("", s.authorizeAction(authorization.ObjectLocation, authorization.ActionView), s.ListLocations)
		locations.GET("/:id", s.authorizeAction(authorization.ObjectLocation, authorization.ActionView), s.GetLocation)
		locations.PATCH("/:id", s.authorizeAction(authorization.ObjectLocation, authorization.ActionUpdate), s.UpdateLocation)
		locations.DELETE("/:id", s.authorizeAction(authorization.ObjectLocation, authorization.ActionDelete), s.DeleteLocation)
	}

	cylinders := api.Group("/cylinders")
	{
		cylinders.POST("", s.authorizeAction(authorization.ObjectCylinder, authorization.ActionCreate), s.CreateCylinder)
		cylinders.GET("", s.authorizeAction(authorization.ObjectCylinder, authorization.ActionView), s.ListCylinders)
		cylinders.GET("/search", s.authorizeAction(authorization.ObjectCylinder, authorization.ActionView), s.SearchCylinders)
		cylinders.GET("/:id", s.authorizeAction(authorization.ObjectCylinder, authorization.ActionView), s.GetCylinder)
		cylinders.PATCH("/:id", s.authorizeAction(authorization.ObjectCylinder, authorization.ActionUpdate), s.UpdateCylinder)
		cylinders.DELETE("/:id", s.authorizeAction(authorization.ObjectCylinder, authorization.ActionDelete), s.DeleteCylinder)
	}

	movements := api.Group("/movements")
	{
		movements.POST("", s.authorizeAction(authorization.ObjectMovement, authorization.ActionCreate), s.RecordMovement)
		movements.GET("", s.authorizeAction(authorization.ObjectMovement, authorization.ActionView), s.ListMovements)
		movements.GET("/:id", s.authorizeAction(authorization.ObjectMovement, authorization.ActionView), s.GetMovement)
	}

	maintenance := api.Group("/maintenance")
	{
		maintenance.POST("", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionCreate), s.CreateMaintenanceRecord)
		maintenance.GET("", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionView), s.ListMaintenanceRecords)
		maintenance.GET("/upcoming", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionView), s.UpcomingMaintenance)
		maintenance.GET("/overdue", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionView), s.OverdueMaintenance)
		maintenance.POST("/schedules", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionMaintenanceSchedule), s.CreateMaintenanceSchedule)
		maintenance.GET("/schedules", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionView), s.ListMaintenanceSchedules)
		maintenance.GET("/:id", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionView), s.GetMaintenanceRecord)
		maintenance.PATCH("/:id", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionUpdate), s.UpdateMaintenanceRecord)
		maintenance.POST("/:id/complete", s.authorizeAction(authorization.ObjectMaintenance, authorization.ActionMaintenanceComplete), s.CompleteMaintenanceRecord)
	}

	transactions := api.Group("/transactions")
	{
		transactions.POST("", s.authorizeAction(authorization.ObjectTransaction, authorization.ActionCreate), s.CreateTransaction)
		transactions.GET("", s.authorizeAction(authorization.ObjectTransaction, authorization.ActionView), s.ListTransactions)
		transactions.GET("/:id", s.authorizeAction(authorization.ObjectTransaction, authorization.ActionView), s.GetTransaction)
		transactions.POST("/:id/complete", s.authorizeAction(authorization.ObjectTransaction, authorization.ActionTransactionComplete), s.CompleteTransaction)
		transactions.POST("/:id/cancel", s.authorizeAction(authorization.ObjectTransaction, authorization.ActionTransactionComplete), s.CancelTransaction)
	}

	fills := api.Group("/fills")
	{
		fills.POST("", s.authorizeAction(authorization.ObjectFill, authorization.ActionCreate), s.RecordFill)
		fills.GET("", s.authorizeAction(authorization.ObjectFill, authorization.ActionView), s.ListFills)
	}

	api.POST("/bulk/cylinders", s.authorizeAction(authorization.ObjectBulk, authorization.ActionBulkIngest), s.BulkIngestCylinders)
	api.POST("/bulk/customers", s.authorizeAction(authorization.ObjectBulk, authorization.ActionBulkIngest), s.BulkIngestCustomers)

	analyticsGroup := api.Group("/analytics")
	{
		analyticsGroup.GET("/dashboard", s.authorizeAction(authorization.ObjectAnalytics, authorization.ActionAnalyticsDashboard), s.AnalyticsDashboard)
		analyticsGroup.GET("/reports/:kind", s.authorizeAction(authorization.ObjectAnalytics, authorization.ActionAnalyticsReport), s.AnalyticsReport)
	}

	api.GET("/audit-logs", s.authorizeAction(authorization.ObjectAuditLog, authorization.ActionView), s.ListAuditLogs)
}
