package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the demo data file.
type Catalog struct {
	Fuels     []FuelEntry     `yaml:"fuels"`
	Sales     []SaleEntry     `yaml:"sales"`
	Operators []OperatorEntry `yaml:"operators"`
}

type FuelEntry struct {
	Name              string `yaml:"name"`
	UnitPrice         string `yaml:"unit_price"`
	QuantityOnHand    string `yaml:"quantity_on_hand"`
	LowStockThreshold string `yaml:"low_stock_threshold"`
}

type SaleEntry struct {
	Fuel          string `yaml:"fuel"`
	Quantity      string `yaml:"quantity"`
	PaymentMethod string `yaml:"payment_method"`
	CreatedAt     string `yaml:"created_at"`
}

// OperatorEntry seeds extra accounts. Passwords are generated at seed time.
type OperatorEntry struct {
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name"`
	Role        string `yaml:"role"`
}

// parsedFuel and parsedSale hold validated catalog rows.
type parsedFuel struct {
	Name              string
	UnitPrice         decimal.Decimal
	QuantityOnHand    decimal.Decimal
	LowStockThreshold decimal.Decimal
}

type parsedSale struct {
	Fuel          string
	Quantity      decimal.Decimal
	PaymentMethod enums.PaymentMethod
	CreatedAt     time.Time
}

type parsedOperator struct {
	Email       string
	DisplayName string
	Role        enums.OperatorRole
}

// LoadCatalog reads the catalog at path, or the embedded default when path is blank.
func LoadCatalog(path string) (*Catalog, error) {
	raw := defaultCatalog
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed catalog: %w", err)
		}
		raw = data
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes YAML, rejecting unknown keys.
func ParseCatalog(raw []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var catalog Catalog
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return &catalog, nil
}

func (c *Catalog) parse() ([]parsedFuel, []parsedSale, []parsedOperator, error) {
	fuels := make([]parsedFuel, 0, len(c.Fuels))
	names := make(map[string]struct{}, len(c.Fuels))
	for i, entry := range c.Fuels {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, nil, nil, fmt.Errorf("fuels[%d]: name is required", i)
		}
		key := strings.ToLower(name)
		if _, dup := names[key]; dup {
			return nil, nil, nil, fmt.Errorf("fuels[%d]: duplicate fuel %q", i, name)
		}
		names[key] = struct{}{}

		price, err := nonNegative(entry.UnitPrice)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fuels[%d].unit_price: %w", i, err)
		}
		qty, err := nonNegative(entry.QuantityOnHand)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fuels[%d].quantity_on_hand: %w", i, err)
		}
		threshold, err := nonNegative(entry.LowStockThreshold)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fuels[%d].low_stock_threshold: %w", i, err)
		}
		fuels = append(fuels, parsedFuel{Name: name, UnitPrice: price, QuantityOnHand: qty, LowStockThreshold: threshold})
	}

	sales := make([]parsedSale, 0, len(c.Sales))
	for i, entry := range c.Sales {
		fuel := strings.TrimSpace(entry.Fuel)
		if _, ok := names[strings.ToLower(fuel)]; !ok {
			return nil, nil, nil, fmt.Errorf("sales[%d]: unknown fuel %q", i, entry.Fuel)
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(entry.Quantity))
		if err != nil || !qty.IsPositive() {
			return nil, nil, nil, fmt.Errorf("sales[%d].quantity: must be a positive number", i)
		}
		method, err := enums.ParsePaymentMethod(entry.PaymentMethod)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sales[%d].payment_method: %w", i, err)
		}
		at, err := time.Parse(time.RFC3339, strings.TrimSpace(entry.CreatedAt))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sales[%d].created_at: %w", i, err)
		}
		sales = append(sales, parsedSale{Fuel: fuel, Quantity: qty, PaymentMethod: method, CreatedAt: at.UTC()})
	}

	operators := make([]parsedOperator, 0, len(c.Operators))
	for i, entry := range c.Operators {
		email := strings.ToLower(strings.TrimSpace(entry.Email))
		if email == "" {
			return nil, nil, nil, fmt.Errorf("operators[%d]: email is required", i)
		}
		role, err := enums.ParseOperatorRole(entry.Role)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("operators[%d].role: %w", i, err)
		}
		operators = append(operators, parsedOperator{Email: email, DisplayName: strings.TrimSpace(entry.DisplayName), Role: role})
	}
	return fuels, sales, operators, nil
}

func nonNegative(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid number %q", raw)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("must not be negative")
	}
	return d, nil
}
