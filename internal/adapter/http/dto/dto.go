package dto

import "hermes-payment-tracker/internal/core/domain"

// RegisterPaymentRequest is the request body for payment registration.
// Amounts are pointers so that an explicit 0 passes "required".
type RegisterPaymentRequest struct {
	PaymentID       string `json:"payment_id" binding:"required,uuid"`
	SenderAccountID string `json:"sender_account_id" binding:"required,safe_id,max=128"`
	OriginalAmount  *int64 `json:"original_amount" binding:"required,min=0"`
	Destination     string `json:"destination" binding:"required,payment_pointer,max=512"`
}

// CompletePaymentRequest is the final outcome reported by a transfer engine.
type CompletePaymentRequest struct {
	AmountSent       *int64 `json:"amount_sent" binding:"required,min=0"`
	AmountDelivered  *int64 `json:"amount_delivered" binding:"required,min=0"`
	AmountLeftToSend *int64 `json:"amount_left_to_send" binding:"required,min=0"`
	Status           string `json:"status" binding:"required,oneof=SUCCESSFUL FAILED"`
}

// Outcome converts a bound request to a domain outcome.
func (r CompletePaymentRequest) Outcome() domain.Outcome {
	return domain.Outcome{
		AmountSent:       deref(r.AmountSent),
		AmountDelivered:  deref(r.AmountDelivered),
		AmountLeftToSend: deref(r.AmountLeftToSend),
		Status:           domain.PaymentStatus(r.Status),
	}
}

// PaymentResponse is the response body for a tracked payment.
type PaymentResponse struct {
	PaymentID        string `json:"payment_id"`
	SenderAccountID  string `json:"sender_account_id"`
	OriginalAmount   int64  `json:"original_amount"`
	AmountSent       int64  `json:"amount_sent"`
	AmountDelivered  int64  `json:"amount_delivered"`
	AmountLeftToSend int64  `json:"amount_left_to_send"`
	Destination      string `json:"destination"`
	Status           string `json:"status"`
}

// ToPaymentResponse converts domain.Payment to DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID.String(),
		SenderAccountID:  p.SenderAccountID,
		OriginalAmount:   p.OriginalAmount,
		AmountSent:       p.AmountSent,
		AmountDelivered:  p.AmountDelivered,
		AmountLeftToSend: p.AmountLeftToSend,
		Destination:      p.Destination,
		Status:           string(p.Status),
	}
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
