package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hermes-payment-tracker/internal/core/domain"
	"hermes-payment-tracker/internal/core/ports"
	"hermes-payment-tracker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultSendTimeout bounds a single transfer run by SendPayment.
const DefaultSendTimeout = 60 * time.Second

// PaymentServiceImpl implements ports.PaymentService.
type PaymentServiceImpl struct {
	tracker     ports.PaymentTracker
	archive     ports.PaymentArchive
	sendTimeout time.Duration
	log         zerolog.Logger

	pending sync.WaitGroup // in-flight archive writes
}

// NewPaymentService creates a new PaymentServiceImpl.
// If archive is nil, terminal payments are not archived.
func NewPaymentService(tracker ports.PaymentTracker, archive ports.PaymentArchive, log zerolog.Logger) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		tracker:     tracker,
		archive:     archive,
		sendTimeout: DefaultSendTimeout,
		log:         log,
	}
}

// WithSendTimeout overrides DefaultSendTimeout. Zero disables the deadline.
func (s *PaymentServiceImpl) WithSendTimeout(d time.Duration) *PaymentServiceImpl {
	s.sendTimeout = d
	return s
}

// Register records a new PENDING payment.
func (s *PaymentServiceImpl) Register(ctx context.Context, req ports.RegisterPaymentRequest) (*domain.Payment, error) {
	if req.PaymentID == uuid.Nil {
		return nil, apperror.Validation("payment_id is required")
	}
	if err := s.tracker.RegisterPayment(ctx, req.PaymentID, req.SenderAccountID, req.OriginalAmount, req.Destination); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", req.PaymentID.String()).
		Str("sender_account_id", req.SenderAccountID).
		Int64("original_amount", req.OriginalAmount).
		Msg("payment registered")

	return domain.NewPendingPayment(req.PaymentID, req.SenderAccountID, req.OriginalAmount, req.Destination), nil
}

// Complete records the final outcome reported by the transfer engine.
func (s *PaymentServiceImpl) Complete(ctx context.Context, paymentID uuid.UUID, outcome domain.Outcome) (*domain.Payment, error) {
	err := s.tracker.UpdatePaymentOnComplete(ctx, paymentID,
		outcome.AmountSent, outcome.AmountDelivered, outcome.AmountLeftToSend, outcome.Status)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, paymentID)
}

// Fail records that the transfer ended in an unexpected error.
func (s *PaymentServiceImpl) Fail(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	if err := s.tracker.UpdatePaymentOnError(ctx, paymentID); err != nil {
		return nil, err
	}
	return s.finish(ctx, paymentID)
}

// finish reads back the terminal record and archives it.
func (s *PaymentServiceImpl) finish(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	p, err := s.tracker.Payment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", paymentID.String()).
		Str("status", string(p.Status)).
		Int64("amount_sent", p.AmountSent).
		Int64("amount_delivered", p.AmountDelivered).
		Msg("payment finished")

	s.archiveAsync(p)
	return p, nil
}

// archiveAsync stores a snapshot in the background (fire-and-forget).
func (s *PaymentServiceImpl) archiveAsync(p *domain.Payment) {
	if s.archive == nil {
		return
	}

	snapshot := *p
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.archive.Archive(context.Background(), &snapshot); err != nil {
			s.log.Warn().Err(err).Str("payment_id", snapshot.PaymentID.String()).Msg("failed to archive payment")
		}
	}()
}

// Wait blocks until background archive writes have finished.
func (s *PaymentServiceImpl) Wait() {
	s.pending.Wait()
}

// Get returns the live record, falling back to the archive once the live
// record has expired.
func (s *PaymentServiceImpl) Get(ctx context.Context, paymentID uuid.UUID) (*domain.Payment, error) {
	p, err := s.tracker.Payment(ctx, paymentID)
	if err == nil || s.archive == nil || !apperror.IsNotFound(err) {
		return p, err
	}

	archived, archErr := s.archive.Get(ctx, paymentID)
	if archErr != nil {
		s.log.Warn().Err(archErr).Str("payment_id", paymentID.String()).Msg("archive lookup failed")
		return nil, err
	}
	if archived == nil {
		return nil, err
	}
	return &archived.Payment, nil
}

// errNoTransferResult is returned when an engine reports neither a result nor an error.
var errNoTransferResult = errors.New("transfer engine returned no result")

// SendPayment runs one payment through the engine with lifecycle tracking:
// register, transfer, then record the outcome. When the engine fails, the
// payment is marked FAILED and the returned error wraps the engine's error.
// The outcome is recorded even if ctx is cancelled once the transfer has run.
func (s *PaymentServiceImpl) SendPayment(ctx context.Context, req ports.RegisterPaymentRequest, engine ports.TransferEngine) (*domain.Payment, error) {
	if _, err := s.Register(ctx, req); err != nil {
		return nil, err
	}

	sendCtx := ctx
	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}

	result, err := engine.Transfer(sendCtx, ports.TransferRequest{
		PaymentID:       req.PaymentID,
		SenderAccountID: req.SenderAccountID,
		Amount:          req.OriginalAmount,
		Destination:     req.Destination,
	})
	if err == nil && result == nil {
		err = errNoTransferResult
	}

	recordCtx := context.WithoutCancel(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("payment_id", req.PaymentID.String()).Msg("transfer failed")

		p, failErr := s.Fail(recordCtx, req.PaymentID)
		if failErr != nil {
			return nil, fmt.Errorf("transfer payment %s: %w (recording failure: %v)", req.PaymentID, err, failErr)
		}
		return p, fmt.Errorf("transfer payment %s: %w", req.PaymentID, err)
	}

	return s.Complete(recordCtx, req.PaymentID, outcomeOf(result))
}

// outcomeOf maps an engine result to a final outcome: SUCCESSFUL only when
// the engine reports success and nothing is left to send.
func outcomeOf(r *ports.TransferResult) domain.Outcome {
	status := domain.PaymentStatusFailed
	if r.Successful && r.AmountLeftToSend == 0 {
		status = domain.PaymentStatusSuccessful
	}
	return domain.Outcome{
		AmountSent:       r.AmountSent,
		AmountDelivered:  r.AmountDelivered,
		AmountLeftToSend: r.AmountLeftToSend,
		Status:           status,
	}
}
