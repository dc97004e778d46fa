package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/service"
)

var (
	escrowOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "operations_total",
		Help:      "Count of escrow operations by outcome.",
	}, []string{"operation", "status"})
	escrowOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "operation_duration_seconds",
		Help:      "Duration of escrow operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	escrowTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "transitions_total",
		Help:      "Count of escrow state transitions.",
	}, []string{"from", "to"})

	auditRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "audit_runs_total",
		Help:      "Count of custody audits.",
	}, []string{"status"})
	auditDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "audit_duration_seconds",
		Help:      "Duration of custody audits.",
		Buckets:   prometheus.DefBuckets,
	})
	auditTransactions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "transactions",
		Help:      "Transactions per state at the last audit.",
	}, []string{"state"})
	auditOpenAmount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "open_amount_satoshis",
		Help:      "Amount held for unsettled escrows at the last audit.",
	})
	auditFeeBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "fee_balance_satoshis",
		Help:      "Withdrawable fee balance at the last audit.",
	})
	auditHeld = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "held_satoshis",
		Help:      "Value held in custody at the last audit.",
	})
	auditBalanced = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "escrow7000",
		Subsystem: "escrow_service",
		Name:      "custody_balanced",
		Help:      "1 when custody equals open amount plus fee balance.",
	})
)

var auditedStates = []model.State{
	model.StateInProgress,
	model.StateCompleted,
	model.StateRefunded,
	model.StateDisputed,
}

// EscrowService tracks escrow operation outcomes, transitions and audits.
type EscrowService struct{}

func NewEscrowService() *EscrowService {
	return &EscrowService{}
}

// Observe records an operation. Rejections by a business rule are counted apart from failures.
func (m EscrowService) Observe(operation string, err error, started time.Time) {
	status := operationStatus(err)
	escrowOperationsTotal.WithLabelValues(operation, status).Inc()
	escrowOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

func (m EscrowService) ObserveTransition(from, to model.State) {
	escrowTransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
}

// ObserveAudit exports the report gauges; a failed audit leaves them untouched.
func (m EscrowService) ObserveAudit(report model.AuditReport, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	auditRunsTotal.WithLabelValues(status).Inc()
	auditDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}

	for _, state := range auditedStates {
		auditTransactions.WithLabelValues(state.String()).Set(float64(report.ByState[state]))
	}
	auditOpenAmount.Set(float64(report.OpenAmount))
	auditFeeBalance.Set(float64(report.FeeBalance))
	auditHeld.Set(float64(report.Held))
	if report.Balanced {
		auditBalanced.Set(1)
	} else {
		auditBalanced.Set(0)
	}
}

func operationStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, service.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, service.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, service.ErrInsufficientDeposit):
		return "insufficient_deposit"
	case errors.Is(err, service.ErrNothingToWithdraw):
		return "nothing_to_withdraw"
	case errors.Is(err, service.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
