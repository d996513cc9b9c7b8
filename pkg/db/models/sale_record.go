package models

import (
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is an immutable ledger row. FuelName and UnitPrice are copied from
// the fuel at sale time so later catalog edits never rewrite history.
type SaleRecord struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	FuelID        *uuid.UUID          `gorm:"column:fuel_id;type:uuid;index"`
	FuelName      string              `gorm:"column:fuel_name;type:text;not null"`
	Quantity      decimal.Decimal     `gorm:"column:quantity;type:numeric(14,3);not null"`
	UnitPrice     decimal.Decimal     `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(14,2);not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	OperatorID    *uuid.UUID          `gorm:"column:operator_id;type:uuid"`
	CreatedAt     time.Time           `gorm:"column:created_at;not null;index"`

	// Deleting a fuel keeps its ledger rows and clears fuel_id.
	Fuel *FuelStock `gorm:"foreignKey:FuelID;references:ID;constraint:OnDelete:SET NULL"`
}

func (SaleRecord) TableName() string { return "sale_records" }
