package fuels

import (
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Litre quantities are stored with three decimal places, prices with two.
const (
	QuantityPlaces int32 = 3
	PricePlaces    int32 = 2
)

// DeriveStockStatus labels a fuel low when its on-hand quantity is at or below
// the threshold. Equality counts as low.
func DeriveStockStatus(quantityOnHand, lowStockThreshold decimal.Decimal) enums.StockStatus {
	if quantityOnHand.LessThanOrEqual(lowStockThreshold) {
		return enums.StockStatusLow
	}
	return enums.StockStatusNormal
}

// StockValue is quantity multiplied by unit price, rounded to cents.
func StockValue(quantityOnHand, unitPrice decimal.Decimal) decimal.Decimal {
	return quantityOnHand.Mul(unitPrice).Round(PricePlaces)
}
