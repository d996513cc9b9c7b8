package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func TestSaleMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSaleMetrics(reg)

	m.ObserveSale("Diesel", "cash", decimal.RequireFromString("100"), decimal.RequireFromString("380.00"))
	m.ObserveRejection("insufficient_stock")
	m.SetStockLevel("Diesel", decimal.RequireFromString("1900"))
	m.SetLowStockCount(2)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	checks := []struct {
		name, label, value string
		want               float64
		gauge              bool
	}{
		{name: "fuelstation_sales_recorded_total", label: "payment_method", value: "cash", want: 1},
		{name: "fuelstation_sales_revenue_total", label: "payment_method", value: "cash", want: 380},
		{name: "fuelstation_litres_sold_total", label: "fuel", value: "Diesel", want: 100},
		{name: "fuelstation_sales_rejected_total", label: "reason", value: "insufficient_stock", want: 1},
		{name: "fuelstation_fuel_stock_litres", label: "fuel", value: "Diesel", want: 1900, gauge: true},
		{name: "fuelstation_fuels_low_stock", want: 2, gauge: true},
	}
	for _, c := range checks {
		var got float64
		if c.gauge {
			got, err = fetchGaugeValue(mfs, c.name, c.label, c.value)
		} else {
			got, err = fetchCounterValue(mfs, c.name, c.label, c.value)
		}
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("%s expected %v got %v", c.name, c.want, got)
		}
	}
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("/api/v1/sales", "POST", 201, 20*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	got, err := fetchCounterValue(mfs, "fuelstation_http_requests_total", "status", "201")
	if err != nil {
		t.Fatalf("fetch requests: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}
