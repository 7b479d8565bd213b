package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lending lifecycle counters plus operational gauges for the DB pool and the
// receipt watcher.

var (
	// Lifecycle
	ProfilesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "profiles",
		Name:      "created_total",
		Help:      "Total passport profiles created (each with its credit line)",
	})

	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "applications",
		Name:      "submitted_total",
		Help:      "Total loan applications submitted",
	})

	ApplicationsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "applications",
		Name:      "approved_total",
		Help:      "Total loan applications approved",
	})

	ApplicationsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "applications",
		Name:      "rejected_total",
		Help:      "Total loan applications rejected",
	})

	DuplicateSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "applications",
		Name:      "duplicate_submissions_total",
		Help:      "Submissions rejected by the one-open-application constraint",
	})

	DecisionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "applications",
		Name:      "decisions_recorded_total",
		Help:      "Approvals recorded and parked awaiting on-chain confirmation",
	})

	DecisionsVoided = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "applications",
		Name:      "decisions_voided_total",
		Help:      "Approvals voided because the disbursement transaction reverted",
	})

	LoansOriginated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "loans",
		Name:      "originated_total",
		Help:      "Total loans originated",
	})

	LoanPrincipalTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "loans",
		Name:      "principal_total",
		Help:      "Cumulative principal of originated loans",
	})

	RepaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "loans",
		Name:      "repayments_total",
		Help:      "Total repayments recorded",
	})

	// Receipt watcher
	WatcherTicks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "watcher",
		Name:      "ticks_total",
		Help:      "Total receipt watcher ticks",
	})

	WatcherReceiptChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "watcher",
		Name:      "receipt_checks_total",
		Help:      "Receipt checks by outcome (confirmed, reverted, pending, error)",
	}, []string{"outcome"})

	WatcherTickLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lending",
		Subsystem: "watcher",
		Name:      "tick_duration_seconds",
		Help:      "Receipt watcher tick processing duration",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})

	// Passport client
	PassportLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "passport",
		Name:      "lookups_total",
		Help:      "Passport API lookups by result (hit, miss, not_found, error)",
	}, []string{"result"})

	// HTTP API
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lending",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by route and status class",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"route", "status"})

	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "api",
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected by the per-IP rate limiter",
	})

	// Alerting
	AlertsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "alerts",
		Name:      "sent_total",
		Help:      "Alerts sent by channel and type",
	}, []string{"channel", "type"})

	AlertsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "alerts",
		Name:      "failed_total",
		Help:      "Alert sends that failed by channel and type",
	}, []string{"channel", "type"})

	AlertsCooldownSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lending",
		Subsystem: "alerts",
		Name:      "cooldown_skipped_total",
		Help:      "Alerts suppressed by the cooldown window",
	}, []string{"channel", "type"})

	// DB pool
	DBPoolOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lending",
		Subsystem: "db",
		Name:      "pool_open_connections",
		Help:      "Open connections in the database pool",
	})

	DBPoolInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lending",
		Subsystem: "db",
		Name:      "pool_in_use_connections",
		Help:      "Connections currently in use",
	})

	DBPoolIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lending",
		Subsystem: "db",
		Name:      "pool_idle_connections",
		Help:      "Idle connections in the pool",
	})

	DBPoolWaitCount = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lending",
		Subsystem: "db",
		Name:      "pool_wait_count_total",
		Help:      "Cumulative connections waited for",
	})

	DBPoolWaitDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lending",
		Subsystem: "db",
		Name:      "pool_wait_duration_seconds",
		Help:      "Cumulative time blocked waiting for a connection",
	})
)
