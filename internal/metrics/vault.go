package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	vaultOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow7000",
		Subsystem: "vault",
		Name:      "operations_total",
		Help:      "Count of custody operations.",
	}, []string{"operation", "status"})
	vaultOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "escrow7000",
		Subsystem: "vault",
		Name:      "operation_duration_seconds",
		Help:      "Duration of custody operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	vaultMovedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow7000",
		Subsystem: "vault",
		Name:      "moved_satoshis_total",
		Help:      "Value deposited into or transferred out of custody.",
	}, []string{"operation"})
)

// Vault tracks custody deposits and transfers.
type Vault struct{}

func NewVault() *Vault {
	return &Vault{}
}

// Observe records a custody call; amounts count only when the call succeeded.
func (m Vault) Observe(operation string, amount uint64, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	vaultOperationsTotal.WithLabelValues(operation, status).Inc()
	vaultOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
	if err == nil && amount > 0 {
		vaultMovedTotal.WithLabelValues(operation).Add(float64(amount))
	}
}
