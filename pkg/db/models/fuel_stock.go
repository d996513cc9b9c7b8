package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FuelStock is one sellable fuel grade and its on-hand volume in litres.
type FuelStock struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name              string          `gorm:"column:name;type:text;not null;uniqueIndex:fuel_stocks_name_key"`
	UnitPrice         decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null;check:fuel_stocks_unit_price_non_negative,unit_price >= 0"`
	QuantityOnHand    decimal.Decimal `gorm:"column:quantity_on_hand;type:numeric(14,3);not null;check:fuel_stocks_quantity_non_negative,quantity_on_hand >= 0"`
	LowStockThreshold decimal.Decimal `gorm:"column:low_stock_threshold;type:numeric(14,3);not null;check:fuel_stocks_threshold_non_negative,low_stock_threshold >= 0"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (FuelStock) TableName() string { return "fuel_stocks" }
