package fuels

import (
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FuelInput is the full set of editable fuel fields. Updates replace every field.
type FuelInput struct {
	Name              string
	UnitPrice         decimal.Decimal
	QuantityOnHand    decimal.Decimal
	LowStockThreshold decimal.Decimal
}

// FuelDTO is the fuel payload returned to clients. Status is derived per read.
type FuelDTO struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	UnitPrice         types.Money       `json:"unit_price"`
	QuantityOnHand    types.Litres      `json:"quantity_on_hand"`
	LowStockThreshold types.Litres      `json:"low_stock_threshold"`
	Status            enums.StockStatus `json:"status"`
	StatusLabel       string            `json:"status_label"`
	StockValue        types.Money       `json:"stock_value"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// NewFuelDTO maps the persisted model and attaches the derived stock status.
func NewFuelDTO(m *models.FuelStock) FuelDTO {
	status := DeriveStockStatus(m.QuantityOnHand, m.LowStockThreshold)
	return FuelDTO{
		ID:                m.ID,
		Name:              m.Name,
		UnitPrice:         types.NewMoney(m.UnitPrice),
		QuantityOnHand:    types.NewLitres(m.QuantityOnHand),
		LowStockThreshold: types.NewLitres(m.LowStockThreshold),
		Status:            status,
		StatusLabel:       status.Label(),
		StockValue:        types.NewMoney(StockValue(m.QuantityOnHand, m.UnitPrice)),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// IsLow reports whether the DTO is flagged low stock.
func (d FuelDTO) IsLow() bool {
	return d.Status == enums.StockStatusLow
}
