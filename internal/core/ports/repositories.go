package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"

	"hermes-payment-tracker/internal/core/domain"

	"github.com/google/uuid"
)

// PaymentArchive keeps terminal payment snapshots after the live record expires.
type PaymentArchive interface {
	// Archive upserts the snapshot keyed by payment ID.
	Archive(ctx context.Context, payment *domain.Payment) error
	// Get returns nil, nil if the payment was never archived.
	Get(ctx context.Context, paymentID uuid.UUID) (*domain.ArchivedPayment, error)
}
