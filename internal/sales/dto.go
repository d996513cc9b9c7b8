package sales

import (
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSaleInput is the raw form submission. Fields stay loosely typed so the
// workflow can report the original form messages in order.
type RecordSaleInput struct {
	FuelID        string
	Quantity      *decimal.Decimal
	PaymentMethod string
}

// SaleDTO is one ledger entry as returned to clients.
type SaleDTO struct {
	ID            uuid.UUID           `json:"id"`
	FuelID        *uuid.UUID          `json:"fuel_id,omitempty"`
	FuelName      string              `json:"fuel_name"`
	Quantity      types.Litres        `json:"quantity"`
	UnitPrice     types.Money         `json:"unit_price"`
	Total         types.Money         `json:"total"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	OperatorID    *uuid.UUID          `json:"operator_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// SaleListResult is a page of the ledger.
type SaleListResult struct {
	Sales      []SaleDTO `json:"sales"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Quote is the prospective total for a sale that has not been recorded.
type Quote struct {
	FuelID    string       `json:"fuel_id"`
	Quantity  types.Litres `json:"quantity"`
	UnitPrice types.Money  `json:"unit_price"`
	Total     types.Money  `json:"total"`
}

func FromModel(m *models.SaleRecord) SaleDTO {
	return SaleDTO{
		ID:            m.ID,
		FuelID:        m.FuelID,
		FuelName:      m.FuelName,
		Quantity:      types.NewLitres(m.Quantity),
		UnitPrice:     types.NewMoney(m.UnitPrice),
		Total:         types.NewMoney(m.Total),
		PaymentMethod: m.PaymentMethod,
		OperatorID:    m.OperatorID,
		CreatedAt:     m.CreatedAt,
	}
}

// FromModels maps a slice of ledger rows, preserving order.
func FromModels(rows []models.SaleRecord) []SaleDTO {
	out := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// LineTotal is price times quantity rounded to cents.
func LineTotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity).Round(2)
}
