package operators

import (
	"strings"
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/google/uuid"
)

// OperatorDTO is the transport shape that omits credentials.
type OperatorDTO struct {
	ID          uuid.UUID          `json:"id"`
	Email       string             `json:"email"`
	DisplayName string             `json:"display_name"`
	Role        enums.OperatorRole `json:"role"`
	IsActive    bool               `json:"is_active"`
	LastLoginAt *time.Time         `json:"last_login_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// CreateOperatorDTO holds the data required to persist a new operator.
type CreateOperatorDTO struct {
	Email        string
	DisplayName  string
	PasswordHash string
	Role         enums.OperatorRole
	IsActive     *bool
}

func FromModel(o *models.Operator) *OperatorDTO {
	if o == nil {
		return nil
	}
	return &OperatorDTO{
		ID:          o.ID,
		Email:       o.Email,
		DisplayName: o.DisplayName,
		Role:        o.Role,
		IsActive:    o.IsActive,
		LastLoginAt: o.LastLoginAt,
		CreatedAt:   o.CreatedAt,
	}
}

func (c CreateOperatorDTO) ToModel() *models.Operator {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}
	return &models.Operator{
		Email:        NormalizeEmail(c.Email),
		DisplayName:  strings.TrimSpace(c.DisplayName),
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		IsActive:     isActive,
	}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
