package operators

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/repo"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes operator persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs an operators repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new operator and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateOperatorDTO) (*models.Operator, error) {
	if !dto.Role.IsValid() {
		return nil, fmt.Errorf("invalid operator role %q", dto.Role)
	}
	operator := dto.ToModel()
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	operator.ID = id
	if err := r.DB(ctx).Create(operator).Error; err != nil {
		return nil, err
	}
	return operator, nil
}

// FindByEmail retrieves the operator matching the provided email, ignoring case.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Operator, error) {
	var operator models.Operator
	if err := r.DB(ctx).Where("email = ?", NormalizeEmail(email)).First(&operator).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

// FindByID loads an operator by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	var operator models.Operator
	if err := r.DB(ctx).First(&operator, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

// UpdateLastLogin refreshes the operator's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.DB(ctx).
		Model(&models.Operator{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// UpdatePasswordHash stores a new hash, used when argon2 parameters change.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.DB(ctx).
		Model(&models.Operator{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}
