package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avolkoff/moneymap/internal/infra/gateway/splitwise"
	"github.com/avolkoff/moneymap/internal/infra/postgres"
	infraRedis "github.com/avolkoff/moneymap/internal/infra/redis"
	"github.com/avolkoff/moneymap/internal/platform/expense"
	"github.com/avolkoff/moneymap/internal/platform/group"
	"github.com/avolkoff/moneymap/internal/platform/importer"
	"github.com/avolkoff/moneymap/internal/platform/income"
	"github.com/avolkoff/moneymap/internal/platform/user"
	"github.com/avolkoff/moneymap/internal/transport/httpapi"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/handler"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/middleware"
	"github.com/avolkoff/moneymap/pkg/config"
	"github.com/avolkoff/moneymap/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting MoneyMap API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize database connection pool
	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize Redis client for the Splitwise identity cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	// The identity cache is an optimization; a dead Redis only costs an
	// extra upstream round trip per import.
	var identityCache splitwise.IdentityCache
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, Splitwise identity cache disabled", "error", err)
	} else {
		identityCache = infraRedis.NewIdentityCache(redisClient, log)
		log.Info("Redis connection established")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	expenseRepo := postgres.NewExpenseRepository(db.Pool)
	groupRepo := postgres.NewGroupRepository(db.Pool)
	incomeRepo := postgres.NewIncomeRepository(db.Pool)

	// Initialize services
	userSvc := user.NewService(userRepo)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)
	expenseSvc := expense.NewService(expenseRepo)
	groupSvc := group.NewService(groupRepo, expenseSvc)
	incomeSvc := income.NewService(incomeRepo)

	// Initialize the Splitwise import pipeline
	splitwiseClient := splitwise.NewClient(cfg.SplitwiseBaseURL, log)
	splitwiseSource := splitwise.NewSourceAdapter(splitwiseClient, identityCache)
	importSvc := importer.NewService(splitwiseSource, expenseSvc, log)
	log.Info("Splitwise import pipeline initialized", "base_url", cfg.SplitwiseBaseURL)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	splitwiseHandler := handler.NewSplitwiseHandler(userSvc, importSvc, log)
	expenseHandler := handler.NewExpenseHandler(expenseSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	incomeHandler := handler.NewIncomeHandler(incomeSvc)
	healthHandler := handler.NewHealthHandler(db)

	// Create JWT middleware
	jwtMiddleware := middleware.JWTMiddleware(jwtSvc)

	// Determine allowed origins for CORS
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if cfg.IsProduction() {
		if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins = []string{origins}
		}
	}

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:           log,
		AllowedOrigins:   allowedOrigins,
		AuthHandler:      authHandler,
		SplitwiseHandler: splitwiseHandler,
		ExpenseHandler:   expenseHandler,
		GroupHandler:     groupHandler,
		IncomeHandler:    incomeHandler,
		HealthHandler:    healthHandler,
		JWTMiddleware:    jwtMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
