package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehouse_sales_recorded_total",
		Help: "Number of bills successfully recorded.",
	})

	TransfersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehouse_transfers_completed_total",
		Help: "Number of stock transfers that reached Completed.",
	})

	StockAdjustments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehouse_stock_adjustments_total",
		Help: "Number of successful manual stock adjustments.",
	})

	TenantMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehouse_tenant_mismatch_total",
		Help: "Requests rejected because the record belongs to another tenant.",
	})
)
