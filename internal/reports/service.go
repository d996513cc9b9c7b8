package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/internal/sales"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/types"
	"github.com/shopspring/decimal"
)

type ledgerReader interface {
	Totals(ctx context.Context, from, to *time.Time) (sales.Totals, error)
	ByFuel(ctx context.Context, from, to *time.Time) ([]sales.FuelTotals, error)
	ByPaymentMethod(ctx context.Context, from, to *time.Time) ([]sales.PaymentTotals, error)
}

type fuelLister interface {
	List(ctx context.Context) ([]models.FuelStock, error)
}

// Service builds sales and inventory reports from the ledger and current stock.
type Service interface {
	Generate(ctx context.Context, req ReportRequest) (*Report, error)
}

type service struct {
	ledger ledgerReader
	fuels  fuelLister
	now    func() time.Time
}

// NewService builds the report service.
func NewService(ledger ledgerReader, fuelRepo fuelLister) (Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger reader required")
	}
	if fuelRepo == nil {
		return nil, fmt.Errorf("fuel repository required")
	}
	return &service{ledger: ledger, fuels: fuelRepo, now: time.Now}, nil
}

func (s *service) Generate(ctx context.Context, req ReportRequest) (*Report, error) {
	kind, err := enums.ParseReportKind(req.Kind)
	if err != nil {
		return nil, fieldError("kind", "report kind must be sales or inventory")
	}
	from, to, err := ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Kind:        kind,
		StartDate:   from.Format(DateLayout),
		EndDate:     to.AddDate(0, 0, -1).Format(DateLayout),
		GeneratedAt: s.now().UTC(),
	}
	switch kind {
	case enums.ReportKindSales:
		report.Sales, err = s.salesReport(ctx, from, to)
	case enums.ReportKindInventory:
		report.Inventory, err = s.inventoryReport(ctx)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ParseRange turns an inclusive pair of calendar dates into the half open UTC
// window [start 00:00, end+1d 00:00).
func ParseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, strings.TrimSpace(startDate), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fieldError("start_date", "start date must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(DateLayout, strings.TrimSpace(endDate), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fieldError("end_date", "end date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fieldError("end_date", "end date must not be before start date")
	}
	return start, end.AddDate(0, 0, 1), nil
}

func (s *service) salesReport(ctx context.Context, from, to time.Time) (*SalesReport, error) {
	totals, err := s.ledger.Totals(ctx, &from, &to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum sales")
	}
	byFuel, err := s.ledger.ByFuel(ctx, &from, &to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "group sales by fuel")
	}
	byMethod, err := s.ledger.ByPaymentMethod(ctx, &from, &to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "group sales by payment method")
	}

	report := &SalesReport{
		TotalSales:         types.NewMoney(totals.Revenue),
		Transactions:       totals.Transactions,
		AverageTransaction: types.NewMoney(Average(totals.Revenue, totals.Transactions)),
		FuelsSold:          make([]FuelSold, 0, len(byFuel)),
		PaymentMethods: PaymentBreakdown{
			Cash: types.NewMoney(decimal.Zero),
			Card: types.NewMoney(decimal.Zero),
		},
	}
	for _, row := range byFuel {
		report.FuelsSold = append(report.FuelsSold, FuelSold{
			Name:     row.FuelName,
			Quantity: types.NewLitres(row.Quantity),
			Revenue:  types.NewMoney(row.Revenue),
		})
	}
	for _, row := range byMethod {
		switch row.PaymentMethod {
		case enums.PaymentMethodCash:
			report.PaymentMethods.Cash = types.NewMoney(row.Revenue)
		case enums.PaymentMethodCard:
			report.PaymentMethods.Card = types.NewMoney(row.Revenue)
		}
	}
	return report, nil
}

func (s *service) inventoryReport(ctx context.Context) (*InventoryReport, error) {
	rows, err := s.fuels.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list fuels")
	}
	report := &InventoryReport{
		CurrentStock: make([]StockLine, 0, len(rows)),
		LowStock:     LowStockAlerts(rows),
	}
	total := decimal.Zero
	for _, fuel := range rows {
		value := fuels.StockValue(fuel.QuantityOnHand, fuel.UnitPrice)
		total = total.Add(value)
		report.CurrentStock = append(report.CurrentStock, StockLine{
			Name:     fuel.Name,
			Quantity: types.NewLitres(fuel.QuantityOnHand),
			Value:    types.NewMoney(value),
		})
	}
	report.TotalValue = types.NewMoney(total)
	return report, nil
}

// LowStockAlerts lists the fuels whose derived status is low stock, in input order.
func LowStockAlerts(rows []models.FuelStock) []LowStockAlert {
	alerts := make([]LowStockAlert, 0)
	for _, fuel := range rows {
		if fuels.DeriveStockStatus(fuel.QuantityOnHand, fuel.LowStockThreshold) != enums.StockStatusLow {
			continue
		}
		alerts = append(alerts, LowStockAlert{
			Name:      fuel.Name,
			Current:   types.NewLitres(fuel.QuantityOnHand),
			Threshold: types.NewLitres(fuel.LowStockThreshold),
		})
	}
	return alerts
}

// Average divides revenue by count, rounded to cents. Zero transactions average zero.
func Average(revenue decimal.Decimal, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(count)).Round(2)
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
