package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/fuelstation-backend/api/routes"
	"github.com/angelmondragon/fuelstation-backend/internal/auth"
	"github.com/angelmondragon/fuelstation-backend/internal/dashboard"
	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/internal/operators"
	"github.com/angelmondragon/fuelstation-backend/internal/reports"
	"github.com/angelmondragon/fuelstation-backend/internal/sales"
	"github.com/angelmondragon/fuelstation-backend/internal/seed"
	"github.com/angelmondragon/fuelstation-backend/pkg/auth/session"
	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	"github.com/angelmondragon/fuelstation-backend/pkg/db"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/angelmondragon/fuelstation-backend/pkg/metrics"
	"github.com/angelmondragon/fuelstation-backend/pkg/migrate"
	"github.com/angelmondragon/fuelstation-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.SeedDemo || dbClient.IsSQLite() {
		if _, err := seed.Run(context.Background(), dbClient, seed.Options{Seed: cfg.Seed, Password: cfg.Password}, logg); err != nil {
			logg.Error(context.Background(), "failed to seed demo data", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	saleMetrics := metrics.NewSaleMetrics(registry)

	fuelRepo := fuels.NewRepository(dbClient.DB())
	saleRepo := sales.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		OperatorRepo:   operators.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	fuelService, err := fuels.NewService(fuelRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create fuel service", err)
		os.Exit(1)
	}

	saleService, err := sales.NewService(sales.ServiceParams{
		Sales:   saleRepo,
		Fuels:   fuelRepo,
		Tx:      dbClient,
		Metrics: saleMetrics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sale service", err)
		os.Exit(1)
	}

	reportService, err := reports.NewService(saleRepo, fuelRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(saleRepo, fuelRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
		"db":       dbClient.Driver(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:           cfg,
			Logger:           logg,
			DBPinger:         dbClient,
			RedisPinger:      redisClient,
			Sessions:         sessionManager,
			RateLimiter:      redisClient,
			Idempotency:      redisClient,
			Rollups:          redisClient,
			Gatherer:         registry,
			HTTPMetrics:      metrics.NewHTTPMetrics(registry),
			AuthService:      authService,
			FuelService:      fuelService,
			SaleService:      saleService,
			ReportService:    reportService,
			DashboardService: dashboardService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}
