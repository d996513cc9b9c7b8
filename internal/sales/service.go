package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	pkgdb "github.com/angelmondragon/fuelstation-backend/pkg/db"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/angelmondragon/fuelstation-backend/pkg/metrics"
	"github.com/angelmondragon/fuelstation-backend/pkg/pagination"
	"github.com/angelmondragon/fuelstation-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records sales against fuel stock and reads the ledger.
type Service interface {
	RecordSale(ctx context.Context, operatorID *uuid.UUID, input RecordSaleInput) (*SaleDTO, error)
	ListSales(ctx context.Context, params pagination.Params) (*SaleListResult, error)
	GetSale(ctx context.Context, id uuid.UUID) (*SaleDTO, error)
	QuoteSale(ctx context.Context, fuelID string, quantity *decimal.Decimal) (*Quote, error)
}

// ServiceParams bundles the dependencies required to build a sales service.
type ServiceParams struct {
	Sales   SaleRepository
	Fuels   fuels.StockRepository
	Tx      txRunner
	Metrics *metrics.SaleMetrics
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	sales   SaleRepository
	fuels   fuels.StockRepository
	tx      txRunner
	metrics *metrics.SaleMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the sale recording service.
func NewService(params ServiceParams) (Service, error) {
	if params.Sales == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if params.Fuels == nil {
		return nil, fmt.Errorf("fuel repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		sales:   params.Sales,
		fuels:   params.Fuels,
		tx:      params.Tx,
		metrics: params.Metrics,
		logg:    logg,
		now:     now,
	}, nil
}

func (s *service) RecordSale(ctx context.Context, operatorID *uuid.UUID, input RecordSaleInput) (*SaleDTO, error) {
	sale, err := s.record(ctx, operatorID, input)
	if err != nil {
		if reason := RejectionReason(err); reason != "" {
			s.metrics.ObserveRejection(reason)
			logCtx := s.logg.WithFields(ctx, map[string]any{
				"reason":  reason,
				"fuel_id": strings.TrimSpace(input.FuelID),
			})
			s.logg.Warn(logCtx, "sale.rejected")
		}
		return nil, err
	}

	s.metrics.ObserveSale(sale.FuelName, sale.PaymentMethod.String(), sale.Quantity, sale.Total)
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"sale_id":        sale.ID.String(),
		"fuel":           sale.FuelName,
		"quantity":       sale.Quantity.String(),
		"total":          sale.Total.StringFixed(2),
		"payment_method": sale.PaymentMethod.String(),
	})
	s.logg.Info(logCtx, "sale.recorded")

	dto := FromModel(sale)
	return &dto, nil
}

// record runs the checks in order; the first failure wins and nothing is written.
func (s *service) record(ctx context.Context, operatorID *uuid.UUID, input RecordSaleInput) (*models.SaleRecord, error) {
	rawFuelID := strings.TrimSpace(input.FuelID)
	if rawFuelID == "" {
		return nil, errIncompleteForm("fuel_id")
	}
	if !validQuantity(input.Quantity) {
		return nil, errIncompleteForm("quantity")
	}
	method := enums.PaymentMethodCash
	if raw := strings.TrimSpace(input.PaymentMethod); raw != "" {
		parsed, err := enums.ParsePaymentMethod(raw)
		if err != nil {
			return nil, errIncompleteForm("payment_method")
		}
		method = parsed
	}
	quantity := *input.Quantity

	fuel, err := s.lookupFuel(ctx, rawFuelID)
	if err != nil {
		return nil, err
	}
	if quantity.GreaterThan(fuel.QuantityOnHand) {
		return nil, errInsufficientStock()
	}

	fuelID := fuel.ID
	sale := &models.SaleRecord{
		FuelID:        &fuelID,
		FuelName:      fuel.Name,
		Quantity:      quantity,
		UnitPrice:     fuel.UnitPrice,
		Total:         LineTotal(fuel.UnitPrice, quantity),
		PaymentMethod: method,
		OperatorID:    operatorID,
		CreatedAt:     s.now().UTC(),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.fuels.WithTx(tx).DecrementStock(ctx, fuel.ID, quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
		}
		if !ok {
			return errInsufficientStock()
		}
		if err := s.sales.WithTx(tx).Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// validQuantity accepts positive litre amounts no finer than the stored scale.
func validQuantity(q *decimal.Decimal) bool {
	return q != nil && q.IsPositive() && q.Equal(q.Round(fuels.QuantityPlaces))
}

func (s *service) lookupFuel(ctx context.Context, rawID string) (*models.FuelStock, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errInvalidFuel()
	}
	fuel, err := s.fuels.FindByID(ctx, id)
	if err != nil {
		if pkgdb.IsNotFound(err) {
			return nil, errInvalidFuel()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fuel")
	}
	return fuel, nil
}

func (s *service) ListSales(ctx context.Context, params pagination.Params) (*SaleListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, err := s.sales.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sales")
	}
	page, more := pagination.Trim(rows, params.Limit)

	result := &SaleListResult{Sales: FromModels(page)}
	if more && len(page) > 0 {
		last := page[len(page)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (s *service) GetSale(ctx context.Context, id uuid.UUID) (*SaleDTO, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if pkgdb.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load sale")
	}
	dto := FromModel(sale)
	return &dto, nil
}

// QuoteSale prices a prospective sale without touching stock. Unknown fuels or
// a quantity RecordSale would reject quote zero.
func (s *service) QuoteSale(ctx context.Context, fuelID string, quantity *decimal.Decimal) (*Quote, error) {
	quote := &Quote{FuelID: strings.TrimSpace(fuelID)}
	if quote.FuelID == "" || !validQuantity(quantity) {
		return quote, nil
	}
	quote.Quantity = types.NewLitres(*quantity)

	fuel, err := s.lookupFuel(ctx, quote.FuelID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			return quote, nil
		}
		return nil, err
	}
	quote.UnitPrice = types.NewMoney(fuel.UnitPrice)
	quote.Total = types.NewMoney(LineTotal(fuel.UnitPrice, *quantity))
	return quote, nil
}
