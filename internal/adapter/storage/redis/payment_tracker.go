package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"hermes-payment-tracker/internal/core/domain"
	"hermes-payment-tracker/pkg/apperror"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// errMalformed marks a stored hash that cannot be decoded into a payment.
var errMalformed = errors.New("malformed stored data")

// PaymentTracker implements ports.PaymentTracker on Redis hashes.
// Registration and completion run as Lua scripts so that the existence
// check and the write are a single atomic step per key.
type PaymentTracker struct {
	client    *goredis.Client
	prefix    string
	register  *goredis.Script
	update    *goredis.Script
	retention time.Duration
	log       zerolog.Logger
}

// paymentHash is the stored layout of payments:<id>.
type paymentHash struct {
	SenderAccountID  string `redis:"sender_account_id"`
	OriginalAmount   int64  `redis:"original_amount"`
	AmountSent       int64  `redis:"amount_sent"`
	AmountDelivered  int64  `redis:"amount_delivered"`
	AmountLeftToSend int64  `redis:"amount_left_to_send"`
	Destination      string `redis:"destination"`
	Status           string `redis:"status"`
}

// NewPaymentTracker creates a Redis-backed tracker. Terminal records expire
// after retention; zero keeps them forever.
func NewPaymentTracker(client *goredis.Client, retention time.Duration, log zerolog.Logger) *PaymentTracker {
	return &PaymentTracker{
		client:    client,
		prefix:    "payments:",
		register:  newRegisterPaymentScript(),
		update:    newUpdatePaymentOnCompleteScript(),
		retention: retention,
		log:       log,
	}
}

// LoadScripts caches both scripts on the server (SCRIPT LOAD).
func (t *PaymentTracker) LoadScripts(ctx context.Context) error {
	if err := t.register.Load(ctx, t.client).Err(); err != nil {
		return fmt.Errorf("redis load register script: %w", err)
	}
	if err := t.update.Load(ctx, t.client).Err(); err != nil {
		return fmt.Errorf("redis load update script: %w", err)
	}
	return nil
}

func (t *PaymentTracker) key(paymentID uuid.UUID) string {
	return t.prefix + paymentID.String()
}

// Payment returns the stored record for paymentID.
func (t *PaymentTracker) Payment(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	cmd := t.client.HGetAll(ctx, t.key(paymentID))
	fields, err := cmd.Result()
	if err != nil {
		return nil, apperror.TrackerUnavailable(fmt.Errorf("redis get payment: %w", err))
	}
	if len(fields) == 0 {
		return nil, apperror.ErrPaymentNotFound(paymentID.String())
	}

	var h paymentHash
	if err := cmd.Scan(&h); err != nil {
		return nil, apperror.TrackerUnavailable(fmt.Errorf("redis decode payment %s: %w: %v", paymentID, errMalformed, err))
	}
	status := domain.PaymentStatus(h.Status)
	if !status.IsValid() {
		return nil, apperror.TrackerUnavailable(fmt.Errorf("redis decode payment %s: %w: unknown status %q", paymentID, errMalformed, h.Status))
	}

	return &domain.Payment{
		PaymentID:        paymentID,
		SenderAccountID:  h.SenderAccountID,
		OriginalAmount:   h.OriginalAmount,
		AmountSent:       h.AmountSent,
		AmountDelivered:  h.AmountDelivered,
		AmountLeftToSend: h.AmountLeftToSend,
		Destination:      h.Destination,
		Status:           status,
	}, nil
}

// RegisterPayment creates a PENDING record. An existing key is never overwritten.
func (t *PaymentTracker) RegisterPayment(ctx context.Context, paymentID uuid.UUID, senderAccountID string, originalAmount int64, destination string) error {
	if err := domain.ValidateRegistration(senderAccountID, originalAmount, destination); err != nil {
		return err
	}

	amount := strconv.FormatInt(originalAmount, 10)
	created, err := t.register.Run(ctx, t.client,
		[]string{t.key(paymentID)},
		senderAccountID, amount, amount, destination,
	).Int64()
	if err != nil {
		return apperror.TrackerUnavailable(fmt.Errorf("redis register payment: %w", err))
	}
	if created == 0 {
		return apperror.ErrPaymentAlreadyExists(paymentID.String())
	}

	t.log.Debug().
		Str("payment_id", paymentID.String()).
		Int64("original_amount", originalAmount).
		Msg("Payment registered")
	return nil
}

// UpdatePaymentOnComplete writes the final outcome of a registered payment.
// The record may be in any state; the last write wins.
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
	return t.applyOutcome(ctx, paymentID, outcome)
}

// UpdatePaymentOnError marks the payment FAILED with nothing confirmed.
// OriginalAmount never changes after registration, so reading it before the
// script runs cannot race with another writer.
func (t *PaymentTracker) UpdatePaymentOnError(ctx context.Context, paymentID uuid.UUID) error {
	p, err := t.Payment(ctx, paymentID)
	if err != nil {
		return err
	}
	return t.applyOutcome(ctx, paymentID, domain.ErrorOutcome(p.OriginalAmount))
}

// retentionSeconds rounds retention up to whole seconds for EXPIRE, so a
// sub-second retention still expires instead of reading as "keep forever".
func (t *PaymentTracker) retentionSeconds() int64 {
	if t.retention <= 0 {
		return 0
	}
	return int64((t.retention + time.Second - 1) / time.Second)
}

func (t *PaymentTracker) applyOutcome(ctx context.Context, paymentID uuid.UUID, o domain.Outcome) error {
	reply, err := t.update.Run(ctx, t.client,
		[]string{t.key(paymentID)},
		strconv.FormatInt(o.AmountSent, 10),
		strconv.FormatInt(o.AmountDelivered, 10),
		strconv.FormatInt(o.AmountLeftToSend, 10),
		string(o.Status),
		strconv.FormatInt(t.retentionSeconds(), 10),
	).Text()
	if err != nil {
		return apperror.TrackerUnavailable(fmt.Errorf("redis update payment: %w", err))
	}

	switch reply {
	case replyUpdated:
		t.log.Debug().
			Str("payment_id", paymentID.String()).
			Str("status", string(o.Status)).
			Msg("Payment outcome recorded")
		return nil
	case replyUnchanged:
		return nil
	case replyReplaced:
		t.log.Warn().
			Str("payment_id", paymentID.String()).
			Str("status", string(o.Status)).
			Msg("Final outcome replaced an earlier final outcome")
		return nil
	case replyNotFound:
		return apperror.ErrPaymentNotFound(paymentID.String())
	default:
		return apperror.TrackerUnavailable(fmt.Errorf("redis update payment: unexpected script reply %q", reply))
	}
}
