package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/fuelstation-backend/internal/cron"
	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/internal/reports"
	"github.com/angelmondragon/fuelstation-backend/internal/sales"
	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	"github.com/angelmondragon/fuelstation-backend/pkg/db"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/angelmondragon/fuelstation-backend/pkg/metrics"
	"github.com/angelmondragon/fuelstation-backend/pkg/migrate"
	"github.com/angelmondragon/fuelstation-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	fuelRepo := fuels.NewRepository(dbClient.DB())
	reportService, err := reports.NewService(sales.NewRepository(dbClient.DB()), fuelRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create report service", err)
		os.Exit(1)
	}

	lowStockJob, err := cron.NewLowStockScanJob(cron.LowStockScanJobParams{
		Logger:  logg,
		Fuels:   fuelRepo,
		Metrics: metrics.NewSaleMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create low stock job", err)
		os.Exit(1)
	}

	rollupJob, err := cron.NewSalesRollupJob(cron.SalesRollupJobParams{
		Logger:       logg,
		Reports:      reportService,
		Cache:        redisClient,
		TTL:          cfg.Cron.RollupCacheTTL,
		LookbackDays: cfg.Cron.RollupLookbackDays,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sales rollup job", err)
		os.Exit(1)
	}

	worker, _ := os.Hostname()
	lock, err := cron.NewCycleLock(redisClient, redisClient.LockKey(cfg.Service.Kind), worker, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry(lowStockJob, rollupJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Schedule: cfg.Cron.Schedule,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"schedule":    cfg.Cron.Schedule,
		"jobs":        registry.Names(),
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
