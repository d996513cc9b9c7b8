package types

import (
	"github.com/shopspring/decimal"
)

// Money renders as a JSON number with exactly two fraction digits.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}

// Litres renders a volume as a JSON number without trailing zeros.
type Litres struct {
	decimal.Decimal
}

func NewLitres(d decimal.Decimal) Litres {
	return Litres{d}
}

func (l Litres) MarshalJSON() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Litres) UnmarshalJSON(b []byte) error {
	return l.Decimal.UnmarshalJSON(b)
}
