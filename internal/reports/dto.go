package reports

import (
	"time"

	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/types"
)

// DateLayout is the calendar date format accepted for report ranges.
const DateLayout = "2006-01-02"

// ReportRequest selects a report kind over an inclusive date range.
type ReportRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Kind      string `json:"kind" validate:"required"`
}

// Report wraps exactly one of the two report shapes.
type Report struct {
	Kind        enums.ReportKind `json:"kind"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	GeneratedAt time.Time        `json:"generated_at"`
	Sales       *SalesReport     `json:"sales,omitempty"`
	Inventory   *InventoryReport `json:"inventory,omitempty"`
}

type SalesReport struct {
	TotalSales         types.Money      `json:"total_sales"`
	Transactions       int64            `json:"transactions"`
	AverageTransaction types.Money      `json:"average_transaction"`
	FuelsSold          []FuelSold       `json:"fuels_sold"`
	PaymentMethods     PaymentBreakdown `json:"payment_methods"`
}

type FuelSold struct {
	Name     string       `json:"name"`
	Quantity types.Litres `json:"quantity"`
	Revenue  types.Money  `json:"revenue"`
}

// PaymentBreakdown is revenue per payment method.
type PaymentBreakdown struct {
	Cash types.Money `json:"cash"`
	Card types.Money `json:"card"`
}

type InventoryReport struct {
	CurrentStock []StockLine     `json:"current_stock"`
	LowStock     []LowStockAlert `json:"low_stock"`
	TotalValue   types.Money     `json:"total_value"`
}

type StockLine struct {
	Name     string       `json:"name"`
	Quantity types.Litres `json:"quantity"`
	Value    types.Money  `json:"value"`
}

// LowStockAlert is shared with the dashboard stock alerts.
type LowStockAlert struct {
	Name      string       `json:"name"`
	Current   types.Litres `json:"current"`
	Threshold types.Litres `json:"threshold"`
}
