// Package main provides a CLI tool for applying the schema and seeding
// the initial admin account.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"tillpoint/internal/core/id"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/internal/infrastructure/storage/postgres/auth_repo"
	"tillpoint/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if os.Getenv("SKIP_SCHEMA") != "true" {
		if err := applySchema(ctx, pool, log); err != nil {
			log.Fatalw("failed to apply schema", "error", err)
		}
	}

	if err := seedAdmin(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin account", "error", err)
	}

	log.Info("seeding completed successfully")
}

// applySchema executes every .sql file from the migrations directory in
// lexical order.
func applySchema(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := pool.Pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
		log.Infow("migration applied", "file", filepath.Base(file))
	}
	return nil
}

func seedAdmin(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@tillpoint.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM cat_users WHERE email = $1 AND NOT deletion_mark`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	txManager := postgres.NewTxManager(pool)
	seq := postgres.NewSequenceGenerator(txManager)
	roleRepo := auth_repo.NewRoleRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	roleService := auth.NewRoleService(roleRepo, txManager, seq)
	userService := auth.NewUserService(userRepo, roleRepo, txManager, seq)

	role := auth.NewRole("admin")
	role.Description = "Full access to all modules"
	role.Modules = []string{"billing", "stock", "expenses", "roles", "users", "dashboard"}
	if err := roleService.Create(ctx, role); err != nil {
		return fmt.Errorf("create admin role: %w", err)
	}
	log.Infow("admin role created", "code", role.Code)

	user := auth.NewUser("System Admin", adminEmail)
	user.RoleID = role.ID
	if err := userService.SetPassword(user, adminPassword); err != nil {
		return fmt.Errorf("set admin password: %w", err)
	}
	if err := userService.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "code", user.Code, "user_id", user.ID)
	return nil
}
