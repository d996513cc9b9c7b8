package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/internal/operators"
	"github.com/angelmondragon/fuelstation-backend/internal/sales"
	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	pkgdb "github.com/angelmondragon/fuelstation-backend/pkg/db"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/models"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/angelmondragon/fuelstation-backend/pkg/security"
	"gorm.io/gorm"
)

const generatedPasswordLength = 16

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Options controls a seed run.
type Options struct {
	Catalog  *Catalog
	Seed     config.SeedConfig
	Password config.PasswordConfig
	Now      func() time.Time
}

// Result reports what a seed run inserted. Existing rows are never touched.
type Result struct {
	FuelsCreated       int
	SalesCreated       int
	OperatorsCreated   int
	GeneratedPasswords map[string]string
}

// Run loads the catalog into an empty store inside one transaction. Fuels and
// sales are only seeded when no fuel exists yet; operators are created when
// their email is unknown.
func Run(ctx context.Context, tx txRunner, opts Options, logg *logger.Logger) (*Result, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	catalog := opts.Catalog
	if catalog == nil {
		loaded, err := LoadCatalog(opts.Seed.File)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}
	fuelRows, saleRows, operatorRows, err := catalog.parse()
	if err != nil {
		return nil, err
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	if email := strings.TrimSpace(opts.Seed.AdminEmail); email != "" {
		operatorRows = append([]parsedOperator{{
			Email:       operators.NormalizeEmail(email),
			DisplayName: "Station Admin",
			Role:        enums.OperatorRoleAdmin,
		}}, operatorRows...)
	}

	result := &Result{GeneratedPasswords: map[string]string{}}
	err = tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := seedCatalog(ctx, tx, fuelRows, saleRows, now().UTC(), result); err != nil {
			return err
		}
		return seedOperators(ctx, tx, operatorRows, opts, result)
	})
	if err != nil {
		return nil, err
	}

	for email := range result.GeneratedPasswords {
		logg.Warn(logg.WithField(ctx, "email", email), "seed.generated_password")
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"fuels":     result.FuelsCreated,
		"sales":     result.SalesCreated,
		"operators": result.OperatorsCreated,
	}), "seed.completed")
	return result, nil
}

func seedCatalog(ctx context.Context, tx *gorm.DB, fuelRows []parsedFuel, saleRows []parsedSale, now time.Time, result *Result) error {
	fuelRepo := fuels.NewRepository(tx)
	existing, err := fuelRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count fuels: %w", err)
	}
	if existing > 0 {
		return nil
	}

	byName := make(map[string]*models.FuelStock, len(fuelRows))
	for i, row := range fuelRows {
		createdAt := now.Add(time.Duration(i) * time.Millisecond)
		fuel := &models.FuelStock{
			Name:              row.Name,
			UnitPrice:         row.UnitPrice,
			QuantityOnHand:    row.QuantityOnHand,
			LowStockThreshold: row.LowStockThreshold,
			CreatedAt:         createdAt,
			UpdatedAt:         createdAt,
		}
		if err := fuelRepo.Create(ctx, fuel); err != nil {
			if pkgdb.IsUniqueViolation(err, "") {
				return fmt.Errorf("fuel %q already exists", row.Name)
			}
			return fmt.Errorf("create fuel %q: %w", row.Name, err)
		}
		byName[strings.ToLower(row.Name)] = fuel
		result.FuelsCreated++
	}

	saleRepo := sales.NewRepository(tx)
	for _, row := range saleRows {
		fuel := byName[strings.ToLower(row.Fuel)]
		fuelID := fuel.ID
		sale := &models.SaleRecord{
			FuelID:        &fuelID,
			FuelName:      fuel.Name,
			Quantity:      row.Quantity,
			UnitPrice:     fuel.UnitPrice,
			Total:         sales.LineTotal(fuel.UnitPrice, row.Quantity),
			PaymentMethod: row.PaymentMethod,
			CreatedAt:     row.CreatedAt,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale for %q: %w", row.Fuel, err)
		}
		result.SalesCreated++
	}
	return nil
}

func seedOperators(ctx context.Context, tx *gorm.DB, rows []parsedOperator, opts Options, result *Result) error {
	repo := operators.NewRepository(tx)
	for _, row := range rows {
		if _, err := repo.FindByEmail(ctx, row.Email); err == nil {
			continue
		} else if !pkgdb.IsNotFound(err) {
			return fmt.Errorf("lookup operator %q: %w", row.Email, err)
		}

		password := ""
		if row.Role == enums.OperatorRoleAdmin {
			password = opts.Seed.AdminPassword
		}
		if password == "" {
			generated, err := security.GeneratePassword(generatedPasswordLength)
			if err != nil {
				return err
			}
			password = generated
			result.GeneratedPasswords[row.Email] = generated
		}
		hash, err := security.HashPassword(password, opts.Password)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", row.Email, err)
		}

		displayName := row.DisplayName
		if displayName == "" {
			displayName = row.Email
		}
		if _, err := repo.Create(ctx, operators.CreateOperatorDTO{
			Email:        row.Email,
			DisplayName:  displayName,
			PasswordHash: hash,
			Role:         row.Role,
		}); err != nil {
			return fmt.Errorf("create operator %q: %w", row.Email, err)
		}
		result.OperatorsCreated++
	}
	return nil
}
