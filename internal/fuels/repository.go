package fuels

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/repo"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists fuel stock rows.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) StockRepository {
	return &Repository{Base: r.Bind(tx)}
}

// Create inserts a fuel. A zero ID is replaced with a time ordered UUID.
func (r *Repository) Create(ctx context.Context, fuel *models.FuelStock) error {
	if fuel.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		fuel.ID = id
	}
	return r.DB(ctx).Create(fuel).Error
}

// Update overwrites the editable columns of fuel. It returns gorm.ErrRecordNotFound
// when no row matches.
func (r *Repository) Update(ctx context.Context, fuel *models.FuelStock) error {
	res := r.DB(ctx).
		Model(&models.FuelStock{}).
		Where("id = ?", fuel.ID).
		Updates(map[string]any{
			"name":                fuel.Name,
			"unit_price":          fuel.UnitPrice,
			"quantity_on_hand":    fuel.QuantityOnHand,
			"low_stock_threshold": fuel.LowStockThreshold,
			"updated_at":          fuel.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a fuel by id. It returns gorm.ErrRecordNotFound when nothing was deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.FuelStock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads a fuel by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.FuelStock, error) {
	var fuel models.FuelStock
	if err := r.DB(ctx).First(&fuel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fuel, nil
}

// FindByName looks a fuel up by name, ignoring case.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.FuelStock, error) {
	var fuel models.FuelStock
	if err := r.DB(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&fuel).Error; err != nil {
		return nil, err
	}
	return &fuel, nil
}

// List returns every fuel in creation order.
func (r *Repository) List(ctx context.Context) ([]models.FuelStock, error) {
	var fuels []models.FuelStock
	if err := r.DB(ctx).Order("created_at ASC").Order("id ASC").Find(&fuels).Error; err != nil {
		return nil, err
	}
	return fuels, nil
}

// Count returns the number of fuels.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB(ctx).Model(&models.FuelStock{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// DecrementStock subtracts qty from the fuel only while enough stock remains.
// It reports false when the row is missing, would go negative, or changed
// between the read and the write.
//
// The new level is computed with decimal arithmetic and written back guarded by
// the level that was read. Subtracting inside SQL drifts on engines that store
// numeric columns as floating point.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (bool, error) {
	db := r.DB(ctx)

	var current models.FuelStock
	err := db.Select("id", "quantity_on_hand").First(&current, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	remaining := current.QuantityOnHand.Sub(qty).Round(QuantityPlaces)
	if remaining.IsNegative() {
		return false, nil
	}

	res := db.
		Model(&models.FuelStock{}).
		Where("id = ? AND quantity_on_hand = ?", id, current.QuantityOnHand).
		Updates(map[string]any{
			"quantity_on_hand": remaining,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
