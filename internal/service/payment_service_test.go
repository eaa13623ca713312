package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hermes-payment-tracker/internal/core/domain"
	"hermes-payment-tracker/internal/core/ports"
	"hermes-payment-tracker/internal/core/ports/mocks"
	"hermes-payment-tracker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentTestDeps struct {
	svc     *PaymentServiceImpl
	tracker *mocks.MockPaymentTracker
	archive *mocks.MockPaymentArchive
	engine  *mocks.MockTransferEngine
	ctrl    *gomock.Controller
}

func setupPaymentService(t *testing.T) *paymentTestDeps {
	ctrl := gomock.NewController(t)
	d := &paymentTestDeps{
		tracker: mocks.NewMockPaymentTracker(ctrl),
		archive: mocks.NewMockPaymentArchive(ctrl),
		engine:  mocks.NewMockTransferEngine(ctrl),
		ctrl:    ctrl,
	}
	d.svc = NewPaymentService(d.tracker, d.archive, zerolog.Nop())
	return d
}

func newRegisterRequest() ports.RegisterPaymentRequest {
	return ports.RegisterPaymentRequest{
		PaymentID:       uuid.New(),
		SenderAccountID: "alice",
		OriginalAmount:  1000,
		Destination:     "$example.com/bob",
	}
}

func pendingFor(req ports.RegisterPaymentRequest) *domain.Payment {
	return domain.NewPendingPayment(req.PaymentID, req.SenderAccountID, req.OriginalAmount, req.Destination)
}

// ==================== Register ====================

func TestPaymentService_Register_Success(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, "alice", int64(1000), "$example.com/bob").Return(nil)

	p, err := d.svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, pendingFor(req), p)
}

func TestPaymentService_Register_NilID(t *testing.T) {
	d := setupPaymentService(t)
	req := newRegisterRequest()
	req.PaymentID = uuid.Nil

	_, err := d.svc.Register(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))
}

func TestPaymentService_Register_PropagatesTrackerError(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperror.ErrPaymentAlreadyExists(req.PaymentID.String()))

	p, err := d.svc.Register(ctx, req)
	assert.Nil(t, p)
	assert.True(t, apperror.IsAlreadyExists(err))
}

// ==================== Complete / Fail ====================

func TestPaymentService_Complete_ArchivesSnapshot(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()
	outcome := domain.Outcome{AmountSent: 1000, AmountDelivered: 990, Status: domain.PaymentStatusSuccessful}
	final := pendingFor(req).Apply(outcome)

	gomock.InOrder(
		d.tracker.EXPECT().UpdatePaymentOnComplete(gomock.Any(), req.PaymentID, int64(1000), int64(990), int64(0), domain.PaymentStatusSuccessful).Return(nil),
		d.tracker.EXPECT().Payment(gomock.Any(), req.PaymentID).Return(final, nil),
	)
	d.archive.EXPECT().Archive(gomock.Any(), final).Return(nil)

	p, err := d.svc.Complete(ctx, req.PaymentID, outcome)
	require.NoError(t, err)
	assert.Equal(t, final, p)

	d.svc.Wait()
}

func TestPaymentService_Complete_NotFound(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	id := uuid.New()

	d.tracker.EXPECT().UpdatePaymentOnComplete(ctx, id, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperror.ErrPaymentNotFound(id.String()))

	_, err := d.svc.Complete(ctx, id, domain.Outcome{Status: domain.PaymentStatusFailed})
	assert.True(t, apperror.IsNotFound(err))
}

func TestPaymentService_Complete_ArchiveFailureIsNotReturned(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	id := uuid.New()
	final := &domain.Payment{PaymentID: id, Status: domain.PaymentStatusFailed}

	d.tracker.EXPECT().UpdatePaymentOnComplete(ctx, id, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.tracker.EXPECT().Payment(ctx, id).Return(final, nil)
	d.archive.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	p, err := d.svc.Complete(ctx, id, domain.Outcome{Status: domain.PaymentStatusFailed})
	assert.NoError(t, err)
	assert.Equal(t, final, p)

	d.svc.Wait()
}

func TestPaymentService_Fail(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()
	final := pendingFor(req).Apply(domain.ErrorOutcome(req.OriginalAmount))

	d.tracker.EXPECT().UpdatePaymentOnError(ctx, req.PaymentID).Return(nil)
	d.tracker.EXPECT().Payment(ctx, req.PaymentID).Return(final, nil)
	d.archive.EXPECT().Archive(gomock.Any(), final).Return(nil)

	p, err := d.svc.Fail(ctx, req.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, p.Status)
	assert.Equal(t, int64(1000), p.AmountLeftToSend)

	d.svc.Wait()
}

func TestPaymentService_WithoutArchive(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockPaymentTracker(ctrl)
	svc := NewPaymentService(tracker, nil, zerolog.Nop())
	ctx := context.Background()
	id := uuid.New()

	tracker.EXPECT().UpdatePaymentOnError(ctx, id).Return(nil)
	tracker.EXPECT().Payment(ctx, id).Return(&domain.Payment{PaymentID: id, Status: domain.PaymentStatusFailed}, nil)

	_, err := svc.Fail(ctx, id)
	require.NoError(t, err)

	tracker.EXPECT().Payment(ctx, id).Return(nil, apperror.ErrPaymentNotFound(id.String()))
	_, err = svc.Get(ctx, id)
	assert.True(t, apperror.IsNotFound(err))
}

// ==================== Get ====================

func TestPaymentService_Get(t *testing.T) {
	id := uuid.New()
	live := &domain.Payment{PaymentID: id, Status: domain.PaymentStatusPending}
	archived := &domain.ArchivedPayment{
		Payment:    domain.Payment{PaymentID: id, Status: domain.PaymentStatusSuccessful},
		ArchivedAt: time.Now(),
	}
	notFound := apperror.ErrPaymentNotFound(id.String())

	tests := []struct {
		name     string
		setup    func(d *paymentTestDeps)
		want     *domain.Payment
		checkErr func(error) bool
	}{
		{
			name: "live record",
			setup: func(d *paymentTestDeps) {
				d.tracker.EXPECT().Payment(gomock.Any(), id).Return(live, nil)
			},
			want: live,
		},
		{
			name: "falls back to archive",
			setup: func(d *paymentTestDeps) {
				d.tracker.EXPECT().Payment(gomock.Any(), id).Return(nil, notFound)
				d.archive.EXPECT().Get(gomock.Any(), id).Return(archived, nil)
			},
			want: &archived.Payment,
		},
		{
			name: "absent everywhere",
			setup: func(d *paymentTestDeps) {
				d.tracker.EXPECT().Payment(gomock.Any(), id).Return(nil, notFound)
				d.archive.EXPECT().Get(gomock.Any(), id).Return(nil, nil)
			},
			checkErr: apperror.IsNotFound,
		},
		{
			name: "archive error keeps not found",
			setup: func(d *paymentTestDeps) {
				d.tracker.EXPECT().Payment(gomock.Any(), id).Return(nil, notFound)
				d.archive.EXPECT().Get(gomock.Any(), id).Return(nil, errors.New("db down"))
			},
			checkErr: apperror.IsNotFound,
		},
		{
			name: "backend failure skips archive",
			setup: func(d *paymentTestDeps) {
				d.tracker.EXPECT().Payment(gomock.Any(), id).Return(nil, apperror.TrackerUnavailable(errors.New("timeout")))
			},
			checkErr: apperror.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupPaymentService(t)
			tt.setup(d)

			p, err := d.svc.Get(context.Background(), id)
			if tt.checkErr != nil {
				assert.True(t, tt.checkErr(err), "got %v", err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

// ==================== SendPayment ====================

func TestPaymentService_SendPayment_Success(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()
	final := pendingFor(req).Apply(domain.Outcome{AmountSent: 1000, AmountDelivered: 990, Status: domain.PaymentStatusSuccessful})

	gomock.InOrder(
		d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, "alice", int64(1000), "$example.com/bob").Return(nil),
		d.engine.EXPECT().Transfer(gomock.Any(), ports.TransferRequest{
			PaymentID:       req.PaymentID,
			SenderAccountID: "alice",
			Amount:          1000,
			Destination:     "$example.com/bob",
		}).Return(&ports.TransferResult{AmountSent: 1000, AmountDelivered: 990, Successful: true}, nil),
		d.tracker.EXPECT().UpdatePaymentOnComplete(gomock.Any(), req.PaymentID, int64(1000), int64(990), int64(0), domain.PaymentStatusSuccessful).Return(nil),
		d.tracker.EXPECT().Payment(gomock.Any(), req.PaymentID).Return(final, nil),
	)
	d.archive.EXPECT().Archive(gomock.Any(), final).Return(nil)

	p, err := d.svc.SendPayment(ctx, req, d.engine)
	require.NoError(t, err)
	assert.Equal(t, final, p)

	d.svc.Wait()
}

func TestPaymentService_SendPayment_PartialIsFailed(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()
	final := pendingFor(req).Apply(domain.Outcome{AmountSent: 600, AmountDelivered: 594, AmountLeftToSend: 400, Status: domain.PaymentStatusFailed})

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.engine.EXPECT().Transfer(gomock.Any(), gomock.Any()).
		Return(&ports.TransferResult{AmountSent: 600, AmountDelivered: 594, AmountLeftToSend: 400, Successful: false}, nil)
	d.tracker.EXPECT().UpdatePaymentOnComplete(gomock.Any(), req.PaymentID, int64(600), int64(594), int64(400), domain.PaymentStatusFailed).Return(nil)
	d.tracker.EXPECT().Payment(gomock.Any(), req.PaymentID).Return(final, nil)
	d.archive.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(nil)

	p, err := d.svc.SendPayment(ctx, req, d.engine)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, p.Status)

	d.svc.Wait()
}

func TestPaymentService_SendPayment_EngineError(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()
	engineErr := errors.New("stream closed")
	final := pendingFor(req).Apply(domain.ErrorOutcome(req.OriginalAmount))

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.engine.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, engineErr)
	d.tracker.EXPECT().UpdatePaymentOnError(gomock.Any(), req.PaymentID).Return(nil)
	d.tracker.EXPECT().Payment(gomock.Any(), req.PaymentID).Return(final, nil)
	d.archive.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(nil)

	p, err := d.svc.SendPayment(ctx, req, d.engine)
	require.Error(t, err)
	assert.ErrorIs(t, err, engineErr)
	require.NotNil(t, p)
	assert.Equal(t, final, p)

	d.svc.Wait()
}

func TestPaymentService_SendPayment_RecordsOutcomeAfterCallerCancels(t *testing.T) {
	d := setupPaymentService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := newRegisterRequest()
	final := pendingFor(req).Apply(domain.Outcome{AmountSent: 1000, AmountDelivered: 990, Status: domain.PaymentStatusSuccessful})

	live := func(ctx context.Context) {
		assert.NoError(t, ctx.Err(), "outcome must be recorded on a live context")
	}

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.engine.EXPECT().Transfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, ports.TransferRequest) (*ports.TransferResult, error) {
			// Funds have moved; the caller gives up before the outcome is stored.
			cancel()
			return &ports.TransferResult{AmountSent: 1000, AmountDelivered: 990, Successful: true}, nil
		})
	d.tracker.EXPECT().UpdatePaymentOnComplete(gomock.Any(), req.PaymentID, int64(1000), int64(990), int64(0), domain.PaymentStatusSuccessful).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID, _, _, _ int64, _ domain.PaymentStatus) error {
			live(ctx)
			return nil
		})
	d.tracker.EXPECT().Payment(gomock.Any(), req.PaymentID).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID) (*domain.Payment, error) {
			live(ctx)
			return final, nil
		})
	d.archive.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(nil)

	p, err := d.svc.SendPayment(ctx, req, d.engine)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccessful, p.Status)

	d.svc.Wait()
}

func TestPaymentService_SendPayment_NilResultIsFailure(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()
	final := pendingFor(req).Apply(domain.ErrorOutcome(req.OriginalAmount))

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.engine.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, nil)
	d.tracker.EXPECT().UpdatePaymentOnError(gomock.Any(), req.PaymentID).Return(nil)
	d.tracker.EXPECT().Payment(gomock.Any(), req.PaymentID).Return(final, nil)
	d.archive.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(nil)

	p, err := d.svc.SendPayment(ctx, req, d.engine)
	assert.ErrorIs(t, err, errNoTransferResult)
	require.NotNil(t, p)
	assert.Equal(t, domain.PaymentStatusFailed, p.Status)

	d.svc.Wait()
}

func TestPaymentService_SendPayment_RegisterFailsSkipsTransfer(t *testing.T) {
	d := setupPaymentService(t)
	ctx := context.Background()
	req := newRegisterRequest()

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperror.TrackerUnavailable(errors.New("connection refused")))

	p, err := d.svc.SendPayment(ctx, req, d.engine)
	assert.Nil(t, p)
	assert.True(t, apperror.IsUnavailable(err))
}

func TestPaymentService_SendPayment_AppliesTimeout(t *testing.T) {
	d := setupPaymentService(t)
	d.svc.WithSendTimeout(10 * time.Millisecond)
	ctx := context.Background()
	req := newRegisterRequest()

	d.tracker.EXPECT().RegisterPayment(ctx, req.PaymentID, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.engine.EXPECT().Transfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ ports.TransferRequest) (*ports.TransferResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	d.tracker.EXPECT().UpdatePaymentOnError(gomock.Any(), req.PaymentID).Return(nil)
	d.tracker.EXPECT().Payment(gomock.Any(), req.PaymentID).
		Return(pendingFor(req).Apply(domain.ErrorOutcome(req.OriginalAmount)), nil)
	d.archive.EXPECT().Archive(gomock.Any(), gomock.Any()).Return(nil)

	_, err := d.svc.SendPayment(ctx, req, d.engine)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	d.svc.Wait()
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name   string
		result ports.TransferResult
		want   domain.PaymentStatus
	}{
		{"fully sent", ports.TransferResult{AmountSent: 10, Successful: true}, domain.PaymentStatusSuccessful},
		{"engine reports failure", ports.TransferResult{AmountSent: 10, Successful: false}, domain.PaymentStatusFailed},
		{"amount left", ports.TransferResult{AmountSent: 5, AmountLeftToSend: 5, Successful: true}, domain.PaymentStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, outcomeOf(&tt.result).Status)
		})
	}
}
