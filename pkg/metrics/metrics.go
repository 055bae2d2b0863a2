package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uw_imports_total",
		Help: "Import runs by final batch status.",
	}, []string{"status"})

	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uw_import_rows_total",
		Help: "Processed import rows by sheet and outcome.",
	}, []string{"sheet", "status"})

	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "uw_import_duration_seconds",
		Help:    "Wall-clock duration of import runs.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordImport(status string, seconds float64) {
	ImportsTotal.WithLabelValues(status).Inc()
	ImportDuration.Observe(seconds)
}

func RecordImportRow(sheet, status string) {
	ImportRowsTotal.WithLabelValues(sheet, status).Inc()
}
