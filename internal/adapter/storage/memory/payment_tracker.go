// Package memory holds the non-durable PaymentTracker used when Redis is
// unreachable at startup. Records live only as long as the process.
package memory

import (
	"context"
	"sync"
	"time"

	"hermes-payment-tracker/internal/core/domain"
	"hermes-payment-tracker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type entry struct {
	payment   domain.Payment
	expiresAt time.Time // zero while pending or when retention is disabled
}

// PaymentTracker implements ports.PaymentTracker on a guarded map.
type PaymentTracker struct {
	mu        sync.RWMutex
	payments  map[uuid.UUID]*entry
	retention time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewPaymentTracker creates an empty in-memory tracker. Terminal records
// expire after retention; zero keeps them forever.
func NewPaymentTracker(retention time.Duration, log zerolog.Logger) *PaymentTracker {
	return &PaymentTracker{
		payments:  make(map[uuid.UUID]*entry),
		retention: retention,
		now:       time.Now,
		log:       log,
	}
}

func (t *PaymentTracker) expired(e *entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// lookup returns the live entry for id. Callers hold t.mu.
func (t *PaymentTracker) lookup(id uuid.UUID) (*entry, bool) {
	e, ok := t.payments[id]
	if !ok || t.expired(e, t.now()) {
		return nil, false
	}
	return e, true
}

// Payment returns a copy of the stored record.
func (t *PaymentTracker) Payment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(paymentID)
	if !ok {
		return nil, apperror.ErrPaymentNotFound(paymentID.String())
	}
	p := e.payment
	return &p, nil
}

// RegisterPayment creates a PENDING record. An expired record counts as absent.
func (t *PaymentTracker) RegisterPayment(ctx context.Context, paymentID uuid.UUID, senderAccountID string, originalAmount int64, destination string) error {
	if err := domain.ValidateRegistration(senderAccountID, originalAmount, destination); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.lookup(paymentID); ok {
		return apperror.ErrPaymentAlreadyExists(paymentID.String())
	}
	t.payments[paymentID] = &entry{
		payment: *domain.NewPendingPayment(paymentID, senderAccountID, originalAmount, destination),
	}

	t.log.Debug().
		Str("payment_id", paymentID.String()).
		Int64("original_amount", originalAmount).
		Msg("Payment registered")
	return nil
}

// UpdatePaymentOnComplete writes the final outcome; the last write wins.
func (t *PaymentTracker) UpdatePaymentOnComplete(ctx context.Context, paymentID uuid.UUID, amountSent, amountDelivered, amountLeftToSend int64, status domain.PaymentStatus) error {
	outcome := domain.Outcome{
		AmountSent:       amountSent,
		AmountDelivered:  amountDelivered,
		AmountLeftToSend: amountLeftToSend,
		Status:           status,
	}
	if err := domain.ValidateOutcome(outcome); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apply(paymentID, func(*domain.Payment) domain.Outcome { return outcome })
}

// UpdatePaymentOnError marks the payment FAILED with nothing confirmed.
func (t *PaymentTracker) UpdatePaymentOnError(ctx context.Context, paymentID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apply(paymentID, func(p *domain.Payment) domain.Outcome {
		return domain.ErrorOutcome(p.OriginalAmount)
	})
}

// apply writes the outcome derived from the current record. Callers hold t.mu.
func (t *PaymentTracker) apply(paymentID uuid.UUID, outcomeFor func(*domain.Payment) domain.Outcome) error {
	e, ok := t.lookup(paymentID)
	if !ok {
		return apperror.ErrPaymentNotFound(paymentID.String())
	}

	outcome := outcomeFor(&e.payment)
	switch {
	case !e.payment.IsTerminal():
		t.log.Debug().
			Str("payment_id", paymentID.String()).
			Str("status", string(outcome.Status)).
			Msg("Payment outcome recorded")
	case !e.payment.Matches(outcome):
		t.log.Warn().
			Str("payment_id", paymentID.String()).
			Str("status", string(outcome.Status)).
			Msg("Final outcome replaced an earlier final outcome")
	}

	e.payment = *e.payment.Apply(outcome)
	if t.retention > 0 {
		e.expiresAt = t.now().Add(t.retention)
	}
	return nil
}

// Sweep drops expired records and returns how many were removed.
func (t *PaymentTracker) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	removed := 0
	for id, e := range t.payments {
		if t.expired(e, now) {
			delete(t.payments, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (t *PaymentTracker) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.Sweep(); n > 0 {
				t.log.Debug().Int("removed", n).Msg("Expired payments swept")
			}
		}
	}
}
