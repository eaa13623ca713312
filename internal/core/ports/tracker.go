package ports

//go:generate mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks

import (
	"context"

	"hermes-payment-tracker/internal/core/domain"

	"github.com/google/uuid"
)

// PaymentTracker records the lifecycle of payments keyed by caller-supplied IDs.
// Implementations are safe for concurrent use.
type PaymentTracker interface {
	// Payment returns the current record, or a TRK_002 error if none exists.
	Payment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
	// RegisterPayment creates a PENDING record. Negative amounts are rejected
	// before any I/O and an already-registered ID yields TRK_003.
	RegisterPayment(ctx context.Context, paymentID uuid.UUID, senderAccountID string, originalAmount int64, destination string) error
	// UpdatePaymentOnComplete writes the final outcome of an existing payment.
	UpdatePaymentOnComplete(ctx context.Context, paymentID uuid.UUID, amountSent, amountDelivered, amountLeftToSend int64, status domain.PaymentStatus) error
	// UpdatePaymentOnError marks the payment FAILED with nothing confirmed.
	UpdatePaymentOnError(ctx context.Context, paymentID uuid.UUID) error
}
