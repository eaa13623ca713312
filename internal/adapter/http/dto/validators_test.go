package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"alice",
		"acct_002",
		"a.b.c",
		"user@bank",
		"org:acct-1",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"acct 001",
		"acct<001>",
		"acct;DROP",
		"",
		"acct\n001",
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestIsPaymentPointer(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"$example.com/bob", true},
		{"$wallet.example.com", true},
		{"https://example.com/bob", true},
		{"", false},
		{"$", false},
		{"bob", false},
		{"http://example.com/bob", false},
		{"$example.com/bob?x=1", false},
		{"$user@example.com/bob", false},
		{"$example.com/ bob", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPaymentPointer(tt.in))
		})
	}
}

func TestRegisterPaymentRequest_Validation(t *testing.T) {
	valid := func() RegisterPaymentRequest {
		return RegisterPaymentRequest{
			PaymentID:       "3f2504e0-4f89-11d3-9a0c-0305e82c3301",
			SenderAccountID: "alice",
			OriginalAmount:  int64Ptr(1000),
			Destination:     "$example.com/bob",
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *RegisterPaymentRequest)
		wantErr bool
	}{
		{"valid", func(r *RegisterPaymentRequest) {}, false},
		{"zero amount", func(r *RegisterPaymentRequest) { r.OriginalAmount = int64Ptr(0) }, false},
		{"missing amount", func(r *RegisterPaymentRequest) { r.OriginalAmount = nil }, true},
		{"negative amount", func(r *RegisterPaymentRequest) { r.OriginalAmount = int64Ptr(-1) }, true},
		{"bad payment id", func(r *RegisterPaymentRequest) { r.PaymentID = "not-a-uuid" }, true},
		{"unsafe sender", func(r *RegisterPaymentRequest) { r.SenderAccountID = "alice smith" }, true},
		{"bad destination", func(r *RegisterPaymentRequest) { r.Destination = "bob" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := binding.Validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCompletePaymentRequest_Validation(t *testing.T) {
	req := CompletePaymentRequest{
		AmountSent:       int64Ptr(1000),
		AmountDelivered:  int64Ptr(990),
		AmountLeftToSend: int64Ptr(0),
		Status:           "SUCCESSFUL",
	}
	assert.NoError(t, binding.Validator.ValidateStruct(&req))

	out := req.Outcome()
	assert.Equal(t, int64(990), out.AmountDelivered)
	assert.Equal(t, "SUCCESSFUL", string(out.Status))

	req.Status = "PENDING"
	assert.Error(t, binding.Validator.ValidateStruct(&req))

	req.Status = "FAILED"
	req.AmountLeftToSend = nil
	assert.Error(t, binding.Validator.ValidateStruct(&req))
}
