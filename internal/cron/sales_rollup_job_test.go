package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/reports"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type stubReportGenerator struct {
	failDays map[string]bool
	requests []reports.ReportRequest
}

func (s *stubReportGenerator) Generate(_ context.Context, req reports.ReportRequest) (*reports.Report, error) {
	s.requests = append(s.requests, req)
	if s.failDays[req.StartDate] {
		return nil, fmt.Errorf("ledger unavailable")
	}
	return &reports.Report{
		Kind:      enums.ReportKindSales,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Sales:     &reports.SalesReport{Transactions: 2},
	}, nil
}

type mapCache struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	c.values[key] = value.(string)
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) SalesRollupKey(day string) string { return "rollup:sales:" + day }

func newRollupJob(t *testing.T, gen *stubReportGenerator, cache *mapCache, lookback int) *salesRollupJob {
	t.Helper()
	job, err := NewSalesRollupJob(SalesRollupJobParams{
		Logger:       logger.Nop(),
		Reports:      gen,
		Cache:        cache,
		LookbackDays: lookback,
	})
	require.NoError(t, err)
	rollup := job.(*salesRollupJob)
	rollup.now = func() time.Time { return time.Date(2024, 4, 7, 15, 30, 0, 0, time.UTC) }
	return rollup
}

func TestSalesRollupJobCachesEachDay(t *testing.T) {
	gen := &stubReportGenerator{}
	cache := newMapCache()
	job := newRollupJob(t, gen, cache, 2)

	require.Equal(t, "daily-sales-rollup", job.Name())
	require.NoError(t, job.Run(context.Background()))

	require.Len(t, gen.requests, 2)
	require.NotContains(t, cache.values, "rollup:sales:2024-04-07")
	for _, day := range []string{"2024-04-06", "2024-04-05"} {
		raw, ok := cache.values["rollup:sales:"+day]
		require.True(t, ok, "missing rollup for %s", day)
		require.Equal(t, 48*time.Hour, cache.ttls["rollup:sales:"+day])

		var report reports.Report
		require.NoError(t, json.Unmarshal([]byte(raw), &report))
		require.Equal(t, day, report.StartDate)
		require.Equal(t, day, report.EndDate)
		require.Equal(t, enums.ReportKindSales, report.Kind)
	}
	require.Equal(t, "sales", gen.requests[0].Kind)
}

func TestSalesRollupJobCollectsFailures(t *testing.T) {
	gen := &stubReportGenerator{failDays: map[string]bool{"2024-04-05": true, "2024-04-04": true}}
	cache := newMapCache()
	job := newRollupJob(t, gen, cache, 3)

	err := job.Run(context.Background())
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 2)
	require.Len(t, cache.values, 1)
	require.Contains(t, cache.values, "rollup:sales:2024-04-06")
}

func TestSalesRollupJobNeverCachesTheOpenDay(t *testing.T) {
	for _, lookback := range []int{-1, 0, 1} {
		gen := &stubReportGenerator{}
		cache := newMapCache()
		job := newRollupJob(t, gen, cache, lookback)

		require.NoError(t, job.Run(context.Background()))
		require.Len(t, gen.requests, 1, "lookback %d", lookback)
		require.Equal(t, "2024-04-06", gen.requests[0].StartDate)
		require.NotContains(t, cache.values, "rollup:sales:2024-04-07")
	}
}

func TestSalesRollupJobRequiresDependencies(t *testing.T) {
	_, err := NewSalesRollupJob(SalesRollupJobParams{Reports: &stubReportGenerator{}, Cache: newMapCache()})
	require.Error(t, err)
	_, err = NewSalesRollupJob(SalesRollupJobParams{Logger: logger.Nop(), Cache: newMapCache()})
	require.Error(t, err)
	_, err = NewSalesRollupJob(SalesRollupJobParams{Logger: logger.Nop(), Reports: &stubReportGenerator{}})
	require.Error(t, err)
}
