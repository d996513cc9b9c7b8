package enums

// StockStatus is the derived availability label of a fuel. It is computed on
// read and never stored.
type StockStatus string

const (
	StockStatusNormal StockStatus = "normal"
	StockStatusLow    StockStatus = "low_stock"
)

var stockStatusLabels = map[StockStatus]string{
	StockStatusNormal: "Normal",
	StockStatusLow:    "Low Stock",
}

func (s StockStatus) String() string {
	return string(s)
}

// Label returns the human readable status shown to operators.
func (s StockStatus) Label() string {
	return stockStatusLabels[s]
}

func (s StockStatus) IsValid() bool {
	_, ok := stockStatusLabels[s]
	return ok
}
