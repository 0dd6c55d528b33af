// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tillpoint/internal/domain/auth"
	"tillpoint/internal/domain/billing"
	"tillpoint/internal/domain/catalogs/expense"
	"tillpoint/internal/domain/catalogs/stockitem"
	"tillpoint/internal/domain/reports"
	"tillpoint/internal/infrastructure/http/v1/handlers"
	"tillpoint/internal/infrastructure/http/v1/middleware"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/pkg/logger"
)

// Module grant keys checked by the permission middleware.
const (
	ModuleBilling   = "billing"
	ModuleStock     = "stock"
	ModuleExpenses  = "expenses"
	ModuleRoles     = "roles"
	ModuleUsers     = "users"
	ModuleDashboard = "dashboard"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	TokenValidator middleware.TokenValidator

	AuthService      *auth.Service
	UserService      *auth.UserService
	RoleService      *auth.RoleService
	StockService     *stockitem.Service
	ExpenseService   *expense.Service
	BillingService   *billing.Service
	DashboardService *reports.Service

	// AllowedOrigins for CORS; empty allows all.
	AllowedOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	billHandler := handlers.NewBillHandler(cfg.BillingService)
	stockHandler := handlers.NewStockHandler(cfg.StockService)
	expenseHandler := handlers.NewExpenseHandler(cfg.ExpenseService)
	roleHandler := handlers.NewRoleHandler(cfg.RoleService)
	userHandler := handlers.NewUserHandler(cfg.UserService)
	dashboardHandler := handlers.NewDashboardHandler(cfg.DashboardService)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.TokenValidator))

		bill := protected.Group("/bill", middleware.RequireModule(ModuleBilling))
		{
			bill.POST("/create", billHandler.Create)
			bill.GET("/list", billHandler.List)
			bill.GET("/pendingamount", billHandler.PendingAmount)
			bill.GET("/salesactivity", billHandler.SalesActivity)
			bill.GET("/report", billHandler.Report)
			bill.DELETE("/deletemany", billHandler.DeleteMany)
			bill.PUT("/pending/:billCode", billHandler.PayPending)
			bill.DELETE("/pending/deletemany", billHandler.DeletePendingMany)
			bill.GET("/:billCode", billHandler.Get)
			bill.PUT("/:billCode", billHandler.Update)
		}

		stock := protected.Group("/stock", middleware.RequireModule(ModuleStock))
		{
			stock.POST("/create", stockHandler.Create)
			stock.GET("/list", stockHandler.List)
			stock.GET("/report", stockHandler.Report)
			stock.DELETE("/deletemany", stockHandler.DeleteMany)
			stock.PUT("/:id", stockHandler.Update)
			stock.PUT("/:id/restock", stockHandler.Restock)
			stock.DELETE("/:id", stockHandler.Delete)
		}

		expenses := protected.Group("/expenses", middleware.RequireModule(ModuleExpenses))
		{
			expenses.POST("/create", expenseHandler.Create)
			expenses.GET("/list", expenseHandler.List)
			expenses.DELETE("/deletemany", expenseHandler.DeleteMany)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		roles := protected.Group("/roles", middleware.RequireModule(ModuleRoles))
		{
			roles.POST("/create", roleHandler.Create)
			roles.GET("/list", roleHandler.List)
			roles.PUT("/:id", roleHandler.Update)
			roles.DELETE("/:id", roleHandler.Delete)
		}

		users := protected.Group("/users", middleware.RequireModule(ModuleUsers))
		{
			users.POST("/create", userHandler.Create)
			users.GET("/list", userHandler.List)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		dashboard := protected.Group("/dashboard", middleware.RequireModule(ModuleDashboard))
		{
			dashboard.GET("/summary", dashboardHandler.Summary)
		}
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}
