// Package metrics records store operation outcomes in Prometheus and serves
// them over HTTP.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/userstore/internal/common"
	"github.com/dmitrijs2005/userstore/internal/dbx"
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK        = "ok"
	ResultNotFound  = "not_found"
	ResultConflict  = "conflict"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
	ResultCanceled  = "canceled"
	ResultError     = "error"
)

type StoreMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewStoreMetrics creates the store collectors and registers them with reg.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: common.MetricsNamespace, Name: "store_operations_total", Help: "Number of store operations by operation and result."},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: common.MetricsNamespace, Name: "store_operation_duration_seconds", Help: "Latency of store operations.", Buckets: prometheus.DefBuckets},
			[]string{"op"},
		),
	}

	reg.MustRegister(m.operations)
	reg.MustRegister(m.duration)

	return m
}

func (m *StoreMetrics) Observe(op string, err error, since time.Time) {
	m.operations.WithLabelValues(op, Result(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(since).Seconds())
}

// Result classifies an operation error into a label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, common.ErrorNotFound):
		return ResultNotFound
	case errors.Is(err, common.ErrVersionConflict):
		return ResultConflict
	case errors.Is(err, common.ErrorIncorrectInput):
		return ResultInvalid
	case dbx.IsUniqueViolation(err):
		return ResultDuplicate
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultError
	}
}
