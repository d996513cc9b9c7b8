package sales

import (
	"context"
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository persists ledger rows.
type SaleRepository interface {
	WithTx(tx *gorm.DB) SaleRepository
	Create(ctx context.Context, sale *models.SaleRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error)
	List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.SaleRecord, error)
}

// LedgerReader exposes the aggregate reads used by reports, the dashboard and
// the cron rollup. A nil bound means unbounded on that side.
type LedgerReader interface {
	Totals(ctx context.Context, from, to *time.Time) (Totals, error)
	ByFuel(ctx context.Context, from, to *time.Time) ([]FuelTotals, error)
	ByPaymentMethod(ctx context.Context, from, to *time.Time) ([]PaymentTotals, error)
	Recent(ctx context.Context, limit int) ([]models.SaleRecord, error)
}
