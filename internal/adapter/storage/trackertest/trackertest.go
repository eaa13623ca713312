// Package trackertest is a behavioural suite every ports.PaymentTracker
// implementation must pass.
package trackertest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"hermes-payment-tracker/internal/core/domain"
	"hermes-payment-tracker/internal/core/ports"
	"hermes-payment-tracker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run executes the suite. newTracker must return an empty tracker.
func Run(t *testing.T, newTracker func(t *testing.T) ports.PaymentTracker) {
	t.Helper()

	ctx := context.Background()

	t.Run("register creates pending record", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()

		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &domain.Payment{
			PaymentID:        id,
			SenderAccountID:  "alice",
			OriginalAmount:   1000,
			AmountSent:       0,
			AmountDelivered:  0,
			AmountLeftToSend: 1000,
			Destination:      "$example.com/bob",
			Status:           domain.PaymentStatusPending,
		}, p)
	})

	t.Run("zero amount is accepted", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()

		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 0, "$example.com/bob"))

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), p.AmountLeftToSend)
	})

	t.Run("invalid registration performs no write", func(t *testing.T) {
		tests := []struct {
			name   string
			sender string
			amount int64
			dest   string
		}{
			{"negative amount", "alice", -1, "$example.com/bob"},
			{"blank sender", "  ", 10, "$example.com/bob"},
			{"blank destination", "alice", 10, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tracker := newTracker(t)
				id := uuid.New()

				err := tracker.RegisterPayment(ctx, id, tt.sender, tt.amount, tt.dest)
				assert.True(t, apperror.IsValidation(err), "got %v", err)

				_, err = tracker.Payment(ctx, id)
				assert.True(t, apperror.IsNotFound(err), "got %v", err)
			})
		}
	})

	t.Run("duplicate registration is rejected and keeps the record", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()

		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))
		require.NoError(t, tracker.UpdatePaymentOnComplete(ctx, id, 400, 396, 600, domain.PaymentStatusFailed))

		err := tracker.RegisterPayment(ctx, id, "mallory", 5, "$example.com/eve")
		assert.True(t, apperror.IsAlreadyExists(err), "got %v", err)

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "alice", p.SenderAccountID)
		assert.Equal(t, int64(400), p.AmountSent)
		assert.Equal(t, domain.PaymentStatusFailed, p.Status)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()

		_, err := tracker.Payment(ctx, id)
		assert.True(t, apperror.IsNotFound(err), "payment: %v", err)

		err = tracker.UpdatePaymentOnComplete(ctx, id, 1, 1, 0, domain.PaymentStatusSuccessful)
		assert.True(t, apperror.IsNotFound(err), "complete: %v", err)

		err = tracker.UpdatePaymentOnError(ctx, id)
		assert.True(t, apperror.IsNotFound(err), "error: %v", err)

		// Updates never create a record.
		_, err = tracker.Payment(ctx, id)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("invalid outcome is rejected", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()
		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 100, "$example.com/bob"))

		tests := []struct {
			name                  string
			sent, delivered, left int64
			status                domain.PaymentStatus
		}{
			{"negative sent", -1, 0, 0, domain.PaymentStatusSuccessful},
			{"negative delivered", 0, -1, 0, domain.PaymentStatusSuccessful},
			{"negative left", 0, 0, -1, domain.PaymentStatusFailed},
			{"pending status", 0, 0, 100, domain.PaymentStatusPending},
			{"unknown status", 0, 0, 100, domain.PaymentStatus("LOST")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tracker.UpdatePaymentOnComplete(ctx, id, tt.sent, tt.delivered, tt.left, tt.status)
				assert.True(t, apperror.IsValidation(err), "got %v", err)
			})
		}

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, p.Status)
	})

	t.Run("completion is idempotent", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()
		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))

		require.NoError(t, tracker.UpdatePaymentOnComplete(ctx, id, 1000, 990, 0, domain.PaymentStatusSuccessful))
		once, err := tracker.Payment(ctx, id)
		require.NoError(t, err)

		require.NoError(t, tracker.UpdatePaymentOnComplete(ctx, id, 1000, 990, 0, domain.PaymentStatusSuccessful))
		twice, err := tracker.Payment(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	})

	t.Run("error outcome resets progress", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()
		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))
		require.NoError(t, tracker.UpdatePaymentOnComplete(ctx, id, 300, 297, 700, domain.PaymentStatusFailed))

		require.NoError(t, tracker.UpdatePaymentOnError(ctx, id))

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, p.Status)
		assert.Equal(t, int64(0), p.AmountSent)
		assert.Equal(t, int64(0), p.AmountDelivered)
		assert.Equal(t, int64(1000), p.AmountLeftToSend)
		assert.Equal(t, int64(1000), p.OriginalAmount)
	})

	t.Run("last write wins", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()
		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))

		require.NoError(t, tracker.UpdatePaymentOnComplete(ctx, id, 1000, 990, 0, domain.PaymentStatusSuccessful))
		require.NoError(t, tracker.UpdatePaymentOnComplete(ctx, id, 10, 9, 990, domain.PaymentStatusFailed))

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusFailed, p.Status)
		assert.Equal(t, int64(10), p.AmountSent)
		assert.Equal(t, int64(990), p.AmountLeftToSend)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()
		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		p.Status = domain.PaymentStatusSuccessful
		p.AmountSent = 1000

		again, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, again.Status)
		assert.Equal(t, int64(0), again.AmountSent)
	})

	t.Run("concurrent completions never mix fields", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()
		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))

		const workers = 32
		outcomes := make([]domain.Outcome, workers)
		for i := range outcomes {
			status := domain.PaymentStatusSuccessful
			if i%2 == 1 {
				status = domain.PaymentStatusFailed
			}
			outcomes[i] = domain.Outcome{
				AmountSent:       int64(i + 1),
				AmountDelivered:  int64(2 * (i + 1)),
				AmountLeftToSend: int64(3 * (i + 1)),
				Status:           status,
			}
		}

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for _, o := range outcomes {
			wg.Add(1)
			go func(o domain.Outcome) {
				defer wg.Done()
				errs <- tracker.UpdatePaymentOnComplete(ctx, id, o.AmountSent, o.AmountDelivered, o.AmountLeftToSend, o.Status)
			}(o)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)

		matches := 0
		for _, o := range outcomes {
			if p.Matches(o) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "final state %+v must equal exactly one call", p)
	})

	t.Run("concurrent registrations create once", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()

		const workers = 16
		var wg sync.WaitGroup
		results := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results <- tracker.RegisterPayment(ctx, id, fmt.Sprintf("sender-%d", i), int64(i), "$example.com/bob")
			}(i)
		}
		wg.Wait()
		close(results)

		created := 0
		for err := range results {
			if err == nil {
				created++
				continue
			}
			assert.True(t, apperror.IsAlreadyExists(err), "got %v", err)
		}
		assert.Equal(t, 1, created)
	})

	t.Run("successful payment end to end", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()

		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))
		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusPending, p.Status)
		assert.Equal(t, int64(1000), p.AmountLeftToSend)

		require.NoError(t, tracker.UpdatePaymentOnComplete(ctx, id, 1000, 990, 0, domain.PaymentStatusSuccessful))
		p, err = tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &domain.Payment{
			PaymentID:        id,
			SenderAccountID:  "alice",
			OriginalAmount:   1000,
			AmountSent:       1000,
			AmountDelivered:  990,
			AmountLeftToSend: 0,
			Destination:      "$example.com/bob",
			Status:           domain.PaymentStatusSuccessful,
		}, p)
	})

	t.Run("failed payment end to end", func(t *testing.T) {
		tracker := newTracker(t)
		id := uuid.New()

		require.NoError(t, tracker.RegisterPayment(ctx, id, "alice", 1000, "$example.com/bob"))
		require.NoError(t, tracker.UpdatePaymentOnError(ctx, id))

		p, err := tracker.Payment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &domain.Payment{
			PaymentID:        id,
			SenderAccountID:  "alice",
			OriginalAmount:   1000,
			AmountSent:       0,
			AmountDelivered:  0,
			AmountLeftToSend: 1000,
			Destination:      "$example.com/bob",
			Status:           domain.PaymentStatusFailed,
		}, p)
	})
}
