package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the invoice pipeline. Registered on the default registry
// and served at /metrics.
var (
	InvoiceRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_renders_total",
		Help: "Invoice views rendered, by resolution strategy.",
	}, []string{"strategy"})

	ResolutionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "invoice_resolution_failures_total",
		Help: "Invoice views that resolved to no data.",
	})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_exports_total",
		Help: "Export attempts, by kind and outcome.",
	}, []string{"kind", "outcome"})

	ThemeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_mutations_total",
		Help: "Theme store mutations, by operation.",
	}, []string{"op"})
)
