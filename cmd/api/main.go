package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/pharmaflow/pharmacy-api/internal/config"
	authHandler "github.com/pharmaflow/pharmacy-api/internal/handler/auth"
	formulaHandler "github.com/pharmaflow/pharmacy-api/internal/handler/formula"
	orderHandler "github.com/pharmaflow/pharmacy-api/internal/handler/order"
	patientHandler "github.com/pharmaflow/pharmacy-api/internal/handler/patient"
	"github.com/pharmaflow/pharmacy-api/internal/middleware"
	"github.com/pharmaflow/pharmacy-api/internal/repository/postgres"
	"github.com/pharmaflow/pharmacy-api/internal/router"
	authService "github.com/pharmaflow/pharmacy-api/internal/service/auth"
	catalogService "github.com/pharmaflow/pharmacy-api/internal/service/catalog"
	orderService "github.com/pharmaflow/pharmacy-api/internal/service/order"
	patientService "github.com/pharmaflow/pharmacy-api/internal/service/patient"
	pkgauth "github.com/pharmaflow/pharmacy-api/pkg/auth"
	"github.com/pharmaflow/pharmacy-api/pkg/logger"
	"github.com/pharmaflow/pharmacy-api/pkg/metrics"
	"github.com/pharmaflow/pharmacy-api/pkg/security"
)

func main() {
	appLogger := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		appLogger.Fatal(err, "failed to migrate database")
	}

	hasher := security.NewBcryptHasher(12)

	// Bootstrap admin; skipped when the row already exists.
	adminHash, err := hasher.Hash(cfg.Admin.Password)
	if err != nil {
		appLogger.Fatal(err, "failed to hash admin password")
	}
	if err := postgres.EnsureAdminAccount(context.Background(), db,
		cfg.Admin.Email, adminHash, cfg.Admin.DisplayName); err != nil {
		appLogger.Fatal(err, "failed to seed admin account")
	}

	// Repositories
	base := postgres.NewBaseRepository(db)
	accountRepo := postgres.NewAccountRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	formulaRepo := postgres.NewFormulaRepository(base)
	orderRepo := postgres.NewOrderRepository(base)

	// Services
	authSvc := authService.NewService(accountRepo, patientRepo, &base, hasher)
	patientSvc := patientService.NewService(patientRepo)
	catalogSvc := catalogService.NewService(formulaRepo)
	orderSvc := orderService.NewService(orderRepo)

	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	m := metrics.NewMetrics("pharmacy")

	// Handlers
	authH := authHandler.NewHandler(authSvc, patientSvc, jwtSvc, m)
	formulaH := formulaHandler.NewHandler(catalogSvc)
	orderH := orderHandler.NewHandler(orderSvc, patientSvc, m)
	patientH := patientHandler.NewHandler(patientSvc)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	engine := router.New(authMiddleware, authH, formulaH, orderH, patientH, router.Config{
		RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst: cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "forced shutdown")
	}
}
