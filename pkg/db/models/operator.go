package models

import (
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/google/uuid"
)

// Operator is a back-office account allowed through the login gate.
type Operator struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Email        string             `gorm:"column:email;type:text;not null;uniqueIndex:operators_email_key"`
	DisplayName  string             `gorm:"column:display_name;type:text;not null"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Role         enums.OperatorRole `gorm:"column:role;type:text;not null"`
	IsActive     bool               `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time         `gorm:"column:last_login_at"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Operator) TableName() string { return "operators" }
