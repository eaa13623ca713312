package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"

	"hermes-payment-tracker/internal/core/domain"

	"github.com/google/uuid"
)

// TransferEngine executes a single payment. It is the opaque sender that the
// tracker wraps; a returned error means the transfer ended unexpectedly.
// A nil error must come with a non-nil result; the tracker records a nil
// result with a nil error as a failed transfer.
type TransferEngine interface {
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// TransferRequest holds what the engine needs to move funds.
type TransferRequest struct {
	PaymentID       uuid.UUID
	SenderAccountID string
	Amount          int64
	Destination     string
}

// TransferResult is the engine's final accounting of a transfer.
type TransferResult struct {
	AmountSent       int64
	AmountDelivered  int64
	AmountLeftToSend int64
	Successful       bool
}

// --- Service Ports (Business Logic) ---

// PaymentService exposes the tracker lifecycle to transports and in-process engines.
type PaymentService interface {
	Register(ctx context.Context, req RegisterPaymentRequest) (*domain.Payment, error)
	Complete(ctx context.Context, paymentID uuid.UUID, outcome domain.Outcome) (*domain.Payment, error)
	Fail(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
	Get(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error)
	SendPayment(ctx context.Context, req RegisterPaymentRequest, engine TransferEngine) (*domain.Payment, error)
}

// RegisterPaymentRequest holds validated input for a registration.
type RegisterPaymentRequest struct {
	PaymentID       uuid.UUID
	SenderAccountID string
	OriginalAmount  int64
	Destination     string
}
