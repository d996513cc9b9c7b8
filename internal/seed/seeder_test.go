package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/internal/operators"
	"github.com/angelmondragon/fuelstation-backend/internal/sales"
	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	pkgdb "github.com/angelmondragon/fuelstation-backend/pkg/db"
	"github.com/angelmondragon/fuelstation-backend/pkg/db/dbtest"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSeedsDefaultCatalogOnce(t *testing.T) {
	conn := dbtest.Open(t)
	opts := Options{Seed: config.SeedConfig{AdminEmail: "Admin@FuelStation.local", AdminPassword: "let-me-in"}}

	result, err := Run(context.Background(), pkgdb.NewFromGorm(conn), opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, result.FuelsCreated)
	assert.Equal(t, 2, result.SalesCreated)
	assert.Equal(t, 2, result.OperatorsCreated)
	assert.Contains(t, result.GeneratedPasswords, "attendant@fuelstation.local")
	assert.NotContains(t, result.GeneratedPasswords, "admin@fuelstation.local")

	fuelRows, err := fuels.NewRepository(conn).List(context.Background())
	require.NoError(t, err)
	require.Len(t, fuelRows, 4)
	assert.Equal(t, "Regular Gasoline", fuelRows[0].Name)
	assert.Equal(t, "Super Premium", fuelRows[3].Name)
	assert.Equal(t, "1500", fuelRows[0].QuantityOnHand.String())

	recent, err := sales.NewRepository(conn).Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Regular Gasoline", recent[0].FuelName)
	assert.Equal(t, "105.00", recent[0].Total.StringFixed(2))
	assert.Equal(t, enums.PaymentMethodCard, recent[1].PaymentMethod)

	admin, err := operators.NewRepository(conn).FindByEmail(context.Background(), "admin@fuelstation.local")
	require.NoError(t, err)
	assert.Equal(t, enums.OperatorRoleAdmin, admin.Role)
	ok, err := security.VerifyPassword("let-me-in", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	again, err := Run(context.Background(), pkgdb.NewFromGorm(conn), opts, nil)
	require.NoError(t, err)
	assert.Zero(t, again.FuelsCreated)
	assert.Zero(t, again.SalesCreated)
	assert.Zero(t, again.OperatorsCreated)
}

func TestRunReadsCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
fuels:
  - name: Kerosene
    unit_price: "2.10"
    quantity_on_hand: "50"
    low_stock_threshold: "100"
`), 0o600))

	conn := dbtest.Open(t)
	result, err := Run(context.Background(), pkgdb.NewFromGorm(conn), Options{Seed: config.SeedConfig{File: path}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FuelsCreated)
	assert.Zero(t, result.OperatorsCreated)

	fuel, err := fuels.NewRepository(conn).FindByName(context.Background(), "kerosene")
	require.NoError(t, err)
	assert.Equal(t, enums.StockStatusLow, fuels.DeriveStockStatus(fuel.QuantityOnHand, fuel.LowStockThreshold))
}

func TestCatalogValidation(t *testing.T) {
	cases := map[string]string{
		"unknown key":       "fuels:\n  - name: A\n    colour: red\n",
		"duplicate fuel":    "fuels:\n  - {name: A, unit_price: '1', quantity_on_hand: '1', low_stock_threshold: '1'}\n  - {name: a, unit_price: '1', quantity_on_hand: '1', low_stock_threshold: '1'}\n",
		"negative price":    "fuels:\n  - {name: A, unit_price: '-1', quantity_on_hand: '1', low_stock_threshold: '1'}\n",
		"sale unknown fuel": "sales:\n  - {fuel: A, quantity: '1', payment_method: cash, created_at: '2024-04-07T00:00:00Z'}\n",
		"bad role":          "operators:\n  - {email: a@b.c, role: owner}\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			catalog, err := ParseCatalog([]byte(raw))
			if err == nil {
				_, _, _, err = catalog.parse()
			}
			require.Error(t, err)
		})
	}
}

func TestDefaultCatalogParses(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	fuelRows, saleRows, operatorRows, err := catalog.parse()
	require.NoError(t, err)
	assert.Len(t, fuelRows, 4)
	assert.Len(t, saleRows, 2)
	assert.Len(t, operatorRows, 1)
}
