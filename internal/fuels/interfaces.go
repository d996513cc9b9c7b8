package fuels

import (
	"context"

	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockRepository is the slice of fuel persistence the sale workflow needs.
type StockRepository interface {
	WithTx(tx *gorm.DB) StockRepository
	FindByID(ctx context.Context, id uuid.UUID) (*models.FuelStock, error)
	List(ctx context.Context) ([]models.FuelStock, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (bool, error)
}
