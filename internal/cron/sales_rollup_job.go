package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/reports"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"go.uber.org/multierr"
)

const (
	defaultRollupTTL      = 48 * time.Hour
	defaultRollupLookback = 1
)

type SalesRollupJobParams struct {
	Logger       *logger.Logger
	Reports      reportGenerator
	Cache        rollupCache
	TTL          time.Duration
	LookbackDays int
}

type reportGenerator interface {
	Generate(ctx context.Context, req reports.ReportRequest) (*reports.Report, error)
}

type rollupCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SalesRollupKey(day string) string
}

// NewSalesRollupJob caches the daily sales report for each of the last
// LookbackDays closed days so dashboards can read them without hitting the
// ledger. The current day is still taking sales and is never cached.
func NewSalesRollupJob(params SalesRollupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reports == nil {
		return nil, fmt.Errorf("report service required")
	}
	if params.Cache == nil {
		return nil, fmt.Errorf("rollup cache required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultRollupTTL
	}
	lookback := params.LookbackDays
	if lookback < 1 {
		lookback = defaultRollupLookback
	}
	return &salesRollupJob{
		logg:     params.Logger,
		reports:  params.Reports,
		cache:    params.Cache,
		ttl:      ttl,
		lookback: lookback,
		now:      time.Now,
	}, nil
}

type salesRollupJob struct {
	logg     *logger.Logger
	reports  reportGenerator
	cache    rollupCache
	ttl      time.Duration
	lookback int
	now      func() time.Time
}

func (j *salesRollupJob) Name() string { return "daily-sales-rollup" }

func (j *salesRollupJob) Run(ctx context.Context) error {
	today := j.now().UTC().Truncate(24 * time.Hour)
	var errs error
	cached := 0
	for offset := 1; offset <= j.lookback; offset++ {
		day := today.AddDate(0, 0, -offset).Format(reports.DateLayout)
		if err := j.rollup(ctx, day); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rollup %s: %w", day, err))
			continue
		}
		cached++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"days_cached":   cached,
		"days_failed":   len(multierr.Errors(errs)),
		"lookback_days": j.lookback,
	})
	j.logg.Info(logCtx, "sales rollup complete")
	return errs
}

func (j *salesRollupJob) rollup(ctx context.Context, day string) error {
	report, err := j.reports.Generate(ctx, reports.ReportRequest{StartDate: day, EndDate: day, Kind: enums.ReportKindSales.String()})
	if err != nil {
		return err
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return j.cache.Set(ctx, j.cache.SalesRollupKey(day), string(payload), j.ttl)
}
