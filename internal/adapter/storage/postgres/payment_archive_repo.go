package postgres

import (
	"context"
	"errors"
	"fmt"

	"hermes-payment-tracker/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaymentArchiveRepo implements ports.PaymentArchive.
type PaymentArchiveRepo struct {
	pool Pool
}

// NewPaymentArchiveRepo creates a new PaymentArchiveRepo.
func NewPaymentArchiveRepo(pool Pool) *PaymentArchiveRepo {
	return &PaymentArchiveRepo{pool: pool}
}

// Archive upserts the snapshot. A later outcome for the same payment replaces
// the earlier one, matching the live store.
func (r *PaymentArchiveRepo) Archive(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payment_archive (payment_id, sender_account_id, original_amount, amount_sent,
			amount_delivered, amount_left_to_send, destination, status, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (payment_id) DO UPDATE SET
			amount_sent = EXCLUDED.amount_sent,
			amount_delivered = EXCLUDED.amount_delivered,
			amount_left_to_send = EXCLUDED.amount_left_to_send,
			status = EXCLUDED.status,
			archived_at = EXCLUDED.archived_at`

	_, err := r.pool.Exec(ctx, query,
		p.PaymentID, p.SenderAccountID, p.OriginalAmount, p.AmountSent,
		p.AmountDelivered, p.AmountLeftToSend, p.Destination, string(p.Status),
	)
	if err != nil {
		return fmt.Errorf("archive payment: %w", err)
	}
	return nil
}

// Get fetches an archived snapshot. Returns nil, nil when absent.
func (r *PaymentArchiveRepo) Get(ctx context.Context, paymentID uuid.UUID) (*domain.ArchivedPayment, error) {
	query := `SELECT payment_id, sender_account_id, original_amount, amount_sent, amount_delivered,
			amount_left_to_send, destination, status, archived_at
		FROM payment_archive WHERE payment_id = $1`

	a := &domain.ArchivedPayment{}
	var status string
	err := r.pool.QueryRow(ctx, query, paymentID).Scan(
		&a.PaymentID, &a.SenderAccountID, &a.OriginalAmount, &a.AmountSent, &a.AmountDelivered,
		&a.AmountLeftToSend, &a.Destination, &status, &a.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get archived payment: %w", err)
	}
	a.Status = domain.PaymentStatus(status)
	return a, nil
}
