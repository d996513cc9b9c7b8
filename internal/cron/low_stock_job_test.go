package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/angelmondragon/fuelstation-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubFuelLister struct {
	rows []models.FuelStock
	err  error
}

func (s stubFuelLister) List(context.Context) ([]models.FuelStock, error) {
	return s.rows, s.err
}

func fuelRow(name string, qty, threshold int64) models.FuelStock {
	return models.FuelStock{
		ID:                uuid.New(),
		Name:              name,
		UnitPrice:         decimal.RequireFromString("3.50"),
		QuantityOnHand:    decimal.NewFromInt(qty),
		LowStockThreshold: decimal.NewFromInt(threshold),
	}
}

func TestLowStockScanJobPublishesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	saleMetrics := metrics.NewSaleMetrics(reg)
	job, err := NewLowStockScanJob(LowStockScanJobParams{
		Logger: logger.Nop(),
		Fuels: stubFuelLister{rows: []models.FuelStock{
			fuelRow("Regular", 1500, 1000),
			fuelRow("Super Premium", 600, 600),
			fuelRow("Diesel", 900, 1500),
		}},
		Metrics: saleMetrics,
	})
	require.NoError(t, err)
	require.Equal(t, "low-stock-scan", job.Name())

	require.NoError(t, job.Run(context.Background()))

	count, err := testutil.GatherAndCount(reg, "fuelstation_fuel_stock_litres")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	var low float64
	for _, family := range families {
		if family.GetName() == "fuelstation_fuels_low_stock" {
			low = family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	require.Equal(t, float64(2), low)
}

func TestLowStockScanJobPropagatesListError(t *testing.T) {
	job, err := NewLowStockScanJob(LowStockScanJobParams{
		Logger: logger.Nop(),
		Fuels:  stubFuelLister{err: errors.New("db down")},
	})
	require.NoError(t, err)
	require.ErrorContains(t, job.Run(context.Background()), "db down")
}

func TestLowStockScanJobRequiresDependencies(t *testing.T) {
	_, err := NewLowStockScanJob(LowStockScanJobParams{Fuels: stubFuelLister{}})
	require.Error(t, err)
	_, err = NewLowStockScanJob(LowStockScanJobParams{Logger: logger.Nop()})
	require.Error(t, err)
}
