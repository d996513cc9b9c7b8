package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyMarshalsTwoDecimals(t *testing.T) {
	payload := struct {
		Total Money  `json:"total"`
		Qty   Litres `json:"qty"`
	}{
		Total: NewMoney(decimal.RequireFromString("380")),
		Qty:   NewLitres(decimal.RequireFromString("100.500")),
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":380.00,"qty":100.5}`, string(b))
	assert.Contains(t, string(b), "380.00")
}

func TestMoneyRoundsHalfUp(t *testing.T) {
	assert.Equal(t, "0.13", NewMoney(decimal.RequireFromString("0.125")).StringFixed(2))
}

func TestUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"4.20"`), &m))
	assert.True(t, m.Equal(decimal.RequireFromString("4.2")))

	var l Litres
	require.NoError(t, json.Unmarshal([]byte(`25`), &l))
	assert.True(t, l.Equal(decimal.NewFromInt(25)))
}
