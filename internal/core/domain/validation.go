package domain

import (
	"strings"

	"hermes-payment-tracker/pkg/apperror"
)

// ValidateRegistration checks the inputs of a registration before any I/O.
func ValidateRegistration(senderAccountID string, originalAmount int64, destination string) error {
	if originalAmount < 0 {
		return apperror.Validation("original_amount must not be negative")
	}
	if strings.TrimSpace(senderAccountID) == "" {
		return apperror.Validation("sender_account_id is required")
	}
	if strings.TrimSpace(destination) == "" {
		return apperror.Validation("destination is required")
	}
	return nil
}

// ValidateOutcome checks a completion update before any I/O.
func ValidateOutcome(o Outcome) error {
	if o.AmountSent < 0 || o.AmountDelivered < 0 || o.AmountLeftToSend < 0 {
		return apperror.Validation("amounts must not be negative")
	}
	if !o.Status.IsTerminal() {
		return apperror.Validation("status must be SUCCESSFUL or FAILED")
	}
	return nil
}
