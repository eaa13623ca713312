// Package metrics instruments the payment tracker with Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"time"

	"hermes-payment-tracker/internal/core/domain"
	"hermes-payment-tracker/internal/core/ports"
	"hermes-payment-tracker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation label values.
const (
	OpPayment          = "payment"
	OpRegister         = "register"
	OpUpdateOnComplete = "update_on_complete"
	OpUpdateOnError    = "update_on_error"
)

// Backend label values.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Collectors groups the tracker metrics registered on one registerer.
type Collectors struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	durable    prometheus.Gauge
}

// NewCollectors registers the tracker metrics on reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_tracker_operations_total",
			Help: "Tracker operations by result; outcome is ok or an error code",
		}, []string{"operation", "backend", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payment_tracker_operation_duration_seconds",
			Help:    "Tracker operation latency",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation", "backend"}),
		durable: f.NewGauge(prometheus.GaugeOpts{
			Name: "payment_tracker_durable",
			Help: "1 when payments are tracked in Redis, 0 for the in-memory fallback",
		}),
	}
}

// SetDurable records the selected tracker mode.
func (c *Collectors) SetDurable(durable bool) {
	if durable {
		c.durable.Set(1)
		return
	}
	c.durable.Set(0)
}

// InstrumentTracker wraps next so that every call is counted and timed.
func (c *Collectors) InstrumentTracker(next ports.PaymentTracker, backend string) ports.PaymentTracker {
	return &instrumentedTracker{next: next, backend: backend, c: c}
}

type instrumentedTracker struct {
	next    ports.PaymentTracker
	backend string
	c       *Collectors
}

func (t *instrumentedTracker) observe(op string, start time.Time, err error) {
	t.c.duration.WithLabelValues(op, t.backend).Observe(time.Since(start).Seconds())
	t.c.operations.WithLabelValues(op, t.backend, outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "error"
}

func (t *instrumentedTracker) Payment(ctx context.Context, paymentID uuid.UUID) (p *domain.Payment, err error) {
	defer func(start time.Time) { t.observe(OpPayment, start, err) }(time.Now())
	return t.next.Payment(ctx, paymentID)
}

func (t *instrumentedTracker) RegisterPayment(ctx context.Context, paymentID uuid.UUID, senderAccountID string, originalAmount int64, destination string) (err error) {
	defer func(start time.Time) { t.observe(OpRegister, start, err) }(time.Now())
	return t.next.RegisterPayment(ctx, paymentID, senderAccountID, originalAmount, destination)
}

func (t *instrumentedTracker) UpdatePaymentOnComplete(ctx context.Context, paymentID uuid.UUID, amountSent, amountDelivered, amountLeftToSend int64, status domain.PaymentStatus) (err error) {
	defer func(start time.Time) { t.observe(OpUpdateOnComplete, start, err) }(time.Now())
	return t.next.UpdatePaymentOnComplete(ctx, paymentID, amountSent, amountDelivered, amountLeftToSend, status)
}

func (t *instrumentedTracker) UpdatePaymentOnError(ctx context.Context, paymentID uuid.UUID) (err error) {
	defer func(start time.Time) { t.observe(OpUpdateOnError, start, err) }(time.Now())
	return t.next.UpdatePaymentOnError(ctx, paymentID)
}
