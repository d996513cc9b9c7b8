package sales

import (
	"context"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/repo"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Totals summarises a slice of the ledger.
type Totals struct {
	Revenue      decimal.Decimal `gorm:"column:revenue"`
	Litres       decimal.Decimal `gorm:"column:litres"`
	Transactions int64           `gorm:"column:transactions"`
}

// FuelTotals groups ledger rows by the fuel name captured at sale time.
type FuelTotals struct {
	FuelName     string          `gorm:"column:fuel_name"`
	Quantity     decimal.Decimal `gorm:"column:quantity"`
	Revenue      decimal.Decimal `gorm:"column:revenue"`
	Transactions int64           `gorm:"column:transactions"`
}

// PaymentTotals groups ledger rows by payment method.
type PaymentTotals struct {
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method"`
	Revenue       decimal.Decimal     `gorm:"column:revenue"`
	Transactions  int64               `gorm:"column:transactions"`
}

// Repository is the GORM-backed ledger.
type Repository struct {
	repo.Base
}

// NewRepository builds a ledger repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) SaleRepository {
	return &Repository{Base: r.Bind(tx)}
}

// Create appends a sale. A zero ID is replaced with a time ordered UUID.
func (r *Repository) Create(ctx context.Context, sale *models.SaleRecord) error {
	if sale.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		sale.ID = id
	}
	return r.DB(ctx).Create(sale).Error
}

// FindByID loads a single ledger row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SaleRecord, error) {
	var sale models.SaleRecord
	if err := r.DB(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns up to limit rows newest first, starting after cursor.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.SaleRecord, error) {
	query := r.DB(ctx).Model(&models.SaleRecord{})
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	var rows []models.SaleRecord
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Recent returns the newest limit rows.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	return r.List(ctx, nil, limit)
}

func (r *Repository) Totals(ctx context.Context, from, to *time.Time) (Totals, error) {
	var out Totals
	err := r.window(ctx, from, to).
		Select("COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(quantity), 0) AS litres, COUNT(*) AS transactions").
		Scan(&out).Error
	return out, err
}

func (r *Repository) ByFuel(ctx context.Context, from, to *time.Time) ([]FuelTotals, error) {
	var out []FuelTotals
	err := r.window(ctx, from, to).
		Select("fuel_name, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS transactions").
		Group("fuel_name").
		Order("fuel_name ASC").
		Scan(&out).Error
	return out, err
}

func (r *Repository) ByPaymentMethod(ctx context.Context, from, to *time.Time) ([]PaymentTotals, error) {
	var out []PaymentTotals
	err := r.window(ctx, from, to).
		Select("payment_method, COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS transactions").
		Group("payment_method").
		Order("payment_method ASC").
		Scan(&out).Error
	return out, err
}

// window scopes a ledger query to [from, to).
func (r *Repository) window(ctx context.Context, from, to *time.Time) *gorm.DB {
	query := r.DB(ctx).Model(&models.SaleRecord{})
	if from != nil {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("created_at < ?", to.UTC())
	}
	return query
}
