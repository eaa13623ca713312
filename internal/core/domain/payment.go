package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the lifecycle state of a tracked payment.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

// IsValid returns true if s is one of the known statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccessful, PaymentStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition may leave s.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccessful || s == PaymentStatusFailed
}

// Payment is the lifecycle record of one payment attempt, keyed by the
// caller-supplied payment ID.
type Payment struct {
	PaymentID        uuid.UUID     `json:"payment_id"`
	SenderAccountID  string        `json:"sender_account_id"`
	OriginalAmount   int64         `json:"original_amount"` // Sender's units
	AmountSent       int64         `json:"amount_sent"`
	AmountDelivered  int64         `json:"amount_delivered"` // Receiver's units
	AmountLeftToSend int64         `json:"amount_left_to_send"`
	Destination      string        `json:"destination"` // Payment pointer
	Status           PaymentStatus `json:"status"`
}

// NewPendingPayment builds the record created by a registration.
func NewPendingPayment(id uuid.UUID, senderAccountID string, originalAmount int64, destination string) *Payment {
	return &Payment{
		PaymentID:        id,
		SenderAccountID:  senderAccountID,
		OriginalAmount:   originalAmount,
		AmountLeftToSend: originalAmount,
		Destination:      destination,
		Status:           PaymentStatusPending,
	}
}

// IsTerminal returns true if the payment has reached a final state.
func (p *Payment) IsTerminal() bool {
	return p.Status.IsTerminal()
}

// Apply returns a copy of p with the outcome written over its progress fields.
func (p *Payment) Apply(o Outcome) *Payment {
	cp := *p
	cp.AmountSent = o.AmountSent
	cp.AmountDelivered = o.AmountDelivered
	cp.AmountLeftToSend = o.AmountLeftToSend
	cp.Status = o.Status
	return &cp
}

// Matches reports whether the payment already carries exactly this outcome.
func (p *Payment) Matches(o Outcome) bool {
	return p.Status == o.Status &&
		p.AmountSent == o.AmountSent &&
		p.AmountDelivered == o.AmountDelivered &&
		p.AmountLeftToSend == o.AmountLeftToSend
}

// Outcome is the result reported by a completion update.
type Outcome struct {
	AmountSent       int64
	AmountDelivered  int64
	AmountLeftToSend int64
	Status           PaymentStatus
}

// ErrorOutcome is the outcome recorded when a transfer ended in an
// unexpected error: nothing confirmed, everything still left to send.
func ErrorOutcome(originalAmount int64) Outcome {
	return Outcome{
		AmountLeftToSend: originalAmount,
		Status:           PaymentStatusFailed,
	}
}

// ArchivedPayment is a terminal payment snapshot kept after the live record expires.
type ArchivedPayment struct {
	Payment
	ArchivedAt time.Time `json:"archived_at"`
}
