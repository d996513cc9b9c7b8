package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/reports"
	"github.com/angelmondragon/fuelstation-backend/internal/sales"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/types"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// RecentSalesLimit is how many ledger rows the dashboard shows.
	RecentSalesLimit = 5
	// AverageWindowDays is the trailing window used for average daily sales.
	AverageWindowDays = 30
)

type ledgerReader interface {
	Totals(ctx context.Context, from, to *time.Time) (sales.Totals, error)
	Recent(ctx context.Context, limit int) ([]models.SaleRecord, error)
}

type fuelLister interface {
	List(ctx context.Context) ([]models.FuelStock, error)
}

// Summary is the landing page payload.
type Summary struct {
	TotalSales        types.Money             `json:"total_sales"`
	FuelTypes         int                     `json:"fuel_types"`
	LowStock          int                     `json:"low_stock"`
	AverageDailySales types.Money             `json:"average_daily_sales"`
	RecentSales       []sales.SaleDTO         `json:"recent_sales"`
	StockAlerts       []reports.LowStockAlert `json:"stock_alerts"`
}

// Service assembles the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	ledger ledgerReader
	fuels  fuelLister
	now    func() time.Time
}

// NewService builds the dashboard service.
func NewService(ledger ledgerReader, fuelRepo fuelLister) (Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger reader required")
	}
	if fuelRepo == nil {
		return nil, fmt.Errorf("fuel repository required")
	}
	return &service{ledger: ledger, fuels: fuelRepo, now: time.Now}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -AverageWindowDays)

	var (
		lifetime sales.Totals
		trailing sales.Totals
		recent   []models.SaleRecord
		fuelRows []models.FuelStock
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lifetime, err = s.ledger.Totals(gctx, nil, nil)
		return wrap(err, "sum lifetime sales")
	})
	g.Go(func() error {
		var err error
		trailing, err = s.ledger.Totals(gctx, &windowStart, &now)
		return wrap(err, "sum trailing sales")
	})
	g.Go(func() error {
		var err error
		recent, err = s.ledger.Recent(gctx, RecentSalesLimit)
		return wrap(err, "load recent sales")
	})
	g.Go(func() error {
		var err error
		fuelRows, err = s.fuels.List(gctx)
		return wrap(err, "list fuels")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	alerts := reports.LowStockAlerts(fuelRows)
	return &Summary{
		TotalSales:        types.NewMoney(lifetime.Revenue),
		FuelTypes:         len(fuelRows),
		LowStock:          len(alerts),
		AverageDailySales: types.NewMoney(trailing.Revenue.Div(decimal.NewFromInt(AverageWindowDays))),
		RecentSales:       sales.FromModels(recent),
		StockAlerts:       alerts,
	}, nil
}

func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
