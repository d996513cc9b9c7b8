package fuels

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	pkgdb "github.com/angelmondragon/fuelstation-backend/pkg/db"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/google/uuid"
)

// MaxNameLength bounds fuel names.
const MaxNameLength = 100

type fuelRepository interface {
	Create(ctx context.Context, fuel *models.FuelStock) error
	Update(ctx context.Context, fuel *models.FuelStock) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.FuelStock, error)
	FindByName(ctx context.Context, name string) (*models.FuelStock, error)
	List(ctx context.Context) ([]models.FuelStock, error)
}

// Service exposes fuel inventory management.
type Service interface {
	CreateFuel(ctx context.Context, input FuelInput) (*FuelDTO, error)
	UpdateFuel(ctx context.Context, id uuid.UUID, input FuelInput) (*FuelDTO, error)
	DeleteFuel(ctx context.Context, id uuid.UUID) error
	GetFuel(ctx context.Context, id uuid.UUID) (*FuelDTO, error)
	ListFuels(ctx context.Context) ([]FuelDTO, error)
	LowStock(ctx context.Context) ([]FuelDTO, error)
}

type service struct {
	repo fuelRepository
	now  func() time.Time
}

// NewService builds the fuel service.
func NewService(repo fuelRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("fuel repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) CreateFuel(ctx context.Context, input FuelInput) (*FuelDTO, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, input.Name, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	fuel := &models.FuelStock{
		Name:              input.Name,
		UnitPrice:         input.UnitPrice,
		QuantityOnHand:    input.QuantityOnHand,
		LowStockThreshold: input.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, fuel); err != nil {
		return nil, mapWriteError(err, "create fuel")
	}
	dto := NewFuelDTO(fuel)
	return &dto, nil
}

func (s *service) UpdateFuel(ctx context.Context, id uuid.UUID, input FuelInput) (*FuelDTO, error) {
	input, err := normalizeInput(input)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadError(err)
	}
	if err := s.ensureNameAvailable(ctx, input.Name, id); err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.UnitPrice = input.UnitPrice
	existing.QuantityOnHand = input.QuantityOnHand
	existing.LowStockThreshold = input.LowStockThreshold
	existing.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, mapWriteError(err, "update fuel")
	}
	dto := NewFuelDTO(existing)
	return &dto, nil
}

func (s *service) DeleteFuel(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if pkgdb.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "fuel not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete fuel")
	}
	return nil
}

func (s *service) GetFuel(ctx context.Context, id uuid.UUID) (*FuelDTO, error) {
	fuel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadError(err)
	}
	dto := NewFuelDTO(fuel)
	return &dto, nil
}

func (s *service) ListFuels(ctx context.Context) ([]FuelDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list fuels")
	}
	out := make([]FuelDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewFuelDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) LowStock(ctx context.Context) ([]FuelDTO, error) {
	all, err := s.ListFuels(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]FuelDTO, 0, len(all))
	for _, fuel := range all {
		if fuel.IsLow() {
			low = append(low, fuel)
		}
	}
	return low, nil
}

func (s *service) ensureNameAvailable(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if pkgdb.IsNotFound(err) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check fuel name")
	}
	if existing.ID == self {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "a fuel with this name already exists").
		WithDetails(map[string]any{"field": "name"})
}

func normalizeInput(input FuelInput) (FuelInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	switch {
	case input.Name == "":
		return input, fieldError("name", "name is required")
	case utf8.RuneCountInString(input.Name) > MaxNameLength:
		return input, fieldError("name", fmt.Sprintf("name must be at most %d characters", MaxNameLength))
	case input.UnitPrice.IsNegative():
		return input, fieldError("unit_price", "unit price must not be negative")
	case input.QuantityOnHand.IsNegative():
		return input, fieldError("quantity_on_hand", "quantity must not be negative")
	case input.LowStockThreshold.IsNegative():
		return input, fieldError("low_stock_threshold", "threshold must not be negative")
	}
	input.UnitPrice = input.UnitPrice.Round(PricePlaces)
	input.QuantityOnHand = input.QuantityOnHand.Round(QuantityPlaces)
	input.LowStockThreshold = input.LowStockThreshold.Round(QuantityPlaces)
	return input, nil
}

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}

func mapReadError(err error) error {
	if pkgdb.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "fuel not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fuel")
}

func mapWriteError(err error, op string) error {
	switch {
	case pkgdb.IsNotFound(err):
		return pkgerrors.New(pkgerrors.CodeNotFound, "fuel not found")
	case pkgdb.IsUniqueViolation(err, ""):
		return pkgerrors.New(pkgerrors.CodeConflict, "a fuel with this name already exists").
			WithDetails(map[string]any{"field": "name"})
	case pkgdb.IsCheckViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "fuel values violate stock constraints")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
	}
}
