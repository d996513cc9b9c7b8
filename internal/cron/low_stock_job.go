package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/angelmondragon/fuelstation-backend/pkg/metrics"
)

type LowStockScanJobParams struct {
	Logger  *logger.Logger
	Fuels   fuelLister
	Metrics *metrics.SaleMetrics
}

type fuelLister interface {
	List(ctx context.Context) ([]models.FuelStock, error)
}

// NewLowStockScanJob publishes stock gauges and warns about every fuel at or
// below its threshold.
func NewLowStockScanJob(params LowStockScanJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Fuels == nil {
		return nil, fmt.Errorf("fuel repository required")
	}
	return &lowStockScanJob{
		logg:    params.Logger,
		fuels:   params.Fuels,
		metrics: params.Metrics,
	}, nil
}

type lowStockScanJob struct {
	logg    *logger.Logger
	fuels   fuelLister
	metrics *metrics.SaleMetrics
}

func (j *lowStockScanJob) Name() string { return "low-stock-scan" }

func (j *lowStockScanJob) Run(ctx context.Context) error {
	rows, err := j.fuels.List(ctx)
	if err != nil {
		return fmt.Errorf("list fuels: %w", err)
	}

	low := 0
	for _, fuel := range rows {
		j.metrics.SetStockLevel(fuel.Name, fuel.QuantityOnHand)
		if fuels.DeriveStockStatus(fuel.QuantityOnHand, fuel.LowStockThreshold) != enums.StockStatusLow {
			continue
		}
		low++
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"fuel_id":   fuel.ID.String(),
			"fuel":      fuel.Name,
			"current":   fuel.QuantityOnHand.String(),
			"threshold": fuel.LowStockThreshold.String(),
		})
		j.logg.Warn(logCtx, "fuel.low_stock")
	}
	j.metrics.SetLowStockCount(low)

	j.logg.Info(j.logg.WithFields(ctx, map[string]any{"fuels": len(rows), "low_stock": low}), "low stock scan complete")
	return nil
}
