// Package main is the entry point for the Tillpoint API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tillpoint/internal/domain/auth"
	"tillpoint/internal/domain/billing"
	"tillpoint/internal/domain/catalogs/expense"
	"tillpoint/internal/domain/catalogs/stockitem"
	"tillpoint/internal/domain/reports"
	v1 "tillpoint/internal/infrastructure/http/v1"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/internal/infrastructure/storage/postgres/auth_repo"
	"tillpoint/internal/infrastructure/storage/postgres/bill_repo"
	"tillpoint/internal/infrastructure/storage/postgres/catalog_repo"
	"tillpoint/internal/infrastructure/storage/postgres/report_repo"
	"tillpoint/pkg/logger"
)

func main() {
	// .env is optional; real deployments pass env directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting tillpoint server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL", log))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	seq := postgres.NewSequenceGenerator(txManager)

	auditStore, err := postgres.NewAuditStore(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit store", "error", err)
	}

	// --- Repositories ---
	stockRepo := catalog_repo.NewStockItemRepo(txManager)
	expenseRepo := catalog_repo.NewExpenseRepo(txManager)
	roleRepo := auth_repo.NewRoleRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)
	billRepo := bill_repo.NewBillRepo(txManager)
	dashboardRepo := report_repo.NewDashboardRepo(txManager)

	// --- Auth ---
	tokens := auth.NewTokenManager(
		mustEnv("JWT_SECRET", log),
		getEnvDuration("JWT_TTL", 24*time.Hour),
	)

	authService := auth.NewService(userRepo, roleRepo, tokens)
	roleService := auth.NewRoleService(roleRepo, txManager, seq)
	userService := auth.NewUserService(userRepo, roleRepo, txManager, seq)

	// --- Domain services ---
	stockService := stockitem.NewService(stockRepo, txManager, seq)
	expenseService := expense.NewService(expenseRepo, txManager, seq)
	billingService := billing.NewService(billRepo, stockitem.NewLedger(stockRepo), txManager, seq, auditStore)

	loc := time.Local
	if tzName := getEnv("REPORT_TIMEZONE", ""); tzName != "" {
		loc, err = time.LoadLocation(tzName)
		if err != nil {
			log.Fatalw("invalid REPORT_TIMEZONE", "value", tzName, "error", err)
		}
	}
	dashboardService := reports.NewService(dashboardRepo, loc)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		TokenValidator:   auth.NewContextValidator(tokens),
		AuthService:      authService,
		UserService:      userService,
		RoleService:      roleService,
		StockService:     stockService,
		ExpenseService:   expenseService,
		BillingService:   billingService,
		DashboardService: dashboardService,
		AllowedOrigins:   splitEnv("CORS_ALLOWED_ORIGINS"),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string, log *logger.Logger) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalw("required environment variable not set", "key", key)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitEnv(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
