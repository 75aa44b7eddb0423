package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	valueUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analitica_value_upserts_total",
		Help: "Ledger upserts by outcome.",
	}, []string{"result"})

	integrityViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analitica_integrity_violations_total",
		Help: "Writes rejected by the program-dimension validation.",
	})

	uniquenessRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analitica_uniqueness_retries_total",
		Help: "Uniqueness races recovered by retrying the upsert.",
	})

	ingestedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analitica_ingested_rows_total",
		Help: "Bulk-loaded rows by status.",
	}, []string{"status"})
)

func ObserveUpsert(inserted bool) {
	if inserted {
		valueUpserts.WithLabelValues("inserted").Inc()
		return
	}
	valueUpserts.WithLabelValues("updated").Inc()
}

func ObserveIntegrityViolation() {
	integrityViolations.Inc()
}

func ObserveUniquenessRetry() {
	uniquenessRetries.Inc()
}

func ObserveIngestedRow(ok bool) {
	if ok {
		ingestedRows.WithLabelValues("ok").Inc()
		return
	}
	ingestedRows.WithLabelValues("error").Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
