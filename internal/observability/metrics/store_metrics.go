package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

const (
	StoreErrorReasonDeadlineExceeded = "deadline_exceeded"
	StoreErrorReasonUniqueViolation  = "unique_violation"
	StoreErrorReasonCheckViolation   = "check_violation"
	StoreErrorReasonForeignKey       = "foreign_key_violation"
	StoreErrorReasonConnection       = "connection"
	StoreErrorReasonUnknown          = "unknown"
)

// StoreMetrics tracks catalog and conversation store latency and failures.
type StoreMetrics struct {
	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec
	viewRefreshes prometheus.Counter
}

var (
	storeMetricsOnce sync.Once
	storeMetrics     *StoreMetrics
)

// Store returns the singleton store metrics registry.
func Store() *StoreMetrics {
	storeMetricsOnce.Do(func() {
		storeMetrics = newStoreMetrics(prometheus.DefaultRegisterer)
	})
	return storeMetrics
}

func newStoreMetrics(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supportly_store_query_duration_seconds",
		Help:    "Store operation latency by operation name.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"operation"})
	queryErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "supportly_store_query_errors_total",
		Help: "Store operation failures by low-cardinality reason.",
	}, []string{"operation", "reason"})
	viewRefreshes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "supportly_product_search_refresh_total",
		Help: "Explicit product_search materialized view refreshes.",
	})

	registerer.MustRegister(queryDuration, queryErrors, viewRefreshes)

	return &StoreMetrics{
		queryDuration: queryDuration,
		queryErrors:   queryErrors,
		viewRefreshes: viewRefreshes,
	}
}

// ObserveQuery records the duration of a store operation and its failure reason, if any.
func (m *StoreMetrics) ObserveQuery(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	operation = strings.TrimSpace(operation)
	m.queryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		m.queryErrors.WithLabelValues(operation, ClassifyStoreError(err)).Inc()
	}
}

func (m *StoreMetrics) IncViewRefresh() {
	if m == nil {
		return
	}
	m.viewRefreshes.Inc()
}

// ClassifyStoreError maps driver errors to low-cardinality reasons.
func ClassifyStoreError(err error) string {
	if err == nil {
		return StoreErrorReasonUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return StoreErrorReasonDeadlineExceeded
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || hasPGCode(err, "23505") {
		return StoreErrorReasonUniqueViolation
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) || hasPGCode(err, "23514") {
		return StoreErrorReasonCheckViolation
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || hasPGCode(err, "23503") {
		return StoreErrorReasonForeignKey
	}
	if hasPGClass(err, "08") {
		return StoreErrorReasonConnection
	}
	return StoreErrorReasonUnknown
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func hasPGClass(err error, class string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, class)
	}
	return false
}
