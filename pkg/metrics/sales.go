package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// SaleMetrics tracks the sale recording workflow and stock levels.
type SaleMetrics struct {
	recorded    *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	litresSold  *prometheus.CounterVec
	revenue     *prometheus.CounterVec
	stockLevel  *prometheus.GaugeVec
	lowStockNow prometheus.Gauge
}

// NewSaleMetrics registers the sale metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	m := &SaleMetrics{
		recorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Sales accepted into the ledger.",
		}, []string{"payment_method"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_rejected_total",
			Help:      "Sale attempts rejected by validation.",
		}, []string{"reason"}),
		litresSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "litres_sold_total",
			Help:      "Litres sold per fuel.",
		}, []string{"fuel"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_revenue_total",
			Help:      "Revenue recorded per payment method.",
		}, []string{"payment_method"}),
		stockLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fuel_stock_litres",
			Help:      "Last observed on-hand litres per fuel.",
		}, []string{"fuel"}),
		lowStockNow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fuels_low_stock",
			Help:      "Number of fuels at or below their low stock threshold at the last scan.",
		}),
	}
	reg.MustRegister(m.recorded, m.rejected, m.litresSold, m.revenue, m.stockLevel, m.lowStockNow)
	return m
}

// ObserveSale records an accepted sale.
func (m *SaleMetrics) ObserveSale(fuel, paymentMethod string, litres, total decimal.Decimal) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
	m.litresSold.WithLabelValues(normalizeLabel(fuel)).Add(litres.InexactFloat64())
	m.revenue.WithLabelValues(normalizeLabel(paymentMethod)).Add(total.InexactFloat64())
}

// ObserveRejection records a rejected sale with a short machine reason.
func (m *SaleMetrics) ObserveRejection(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// SetStockLevel publishes the current on-hand litres of a fuel.
func (m *SaleMetrics) SetStockLevel(fuel string, litres decimal.Decimal) {
	if m == nil || m.stockLevel == nil {
		return
	}
	m.stockLevel.WithLabelValues(normalizeLabel(fuel)).Set(litres.InexactFloat64())
}

// SetLowStockCount publishes how many fuels are currently low.
func (m *SaleMetrics) SetLowStockCount(n int) {
	if m == nil || m.lowStockNow == nil {
		return
	}
	m.lowStockNow.Set(float64(n))
}
