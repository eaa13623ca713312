package handler

import (
	"hermes-payment-tracker/internal/adapter/http/dto"
	"hermes-payment-tracker/internal/core/ports"
	"hermes-payment-tracker/pkg/apperror"
	"hermes-payment-tracker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment lifecycle endpoints.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// Register handles POST /api/v1/payments.
func (h *PaymentHandler) Register(c *gin.Context) {
	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	// Already checked by the uuid binding tag.
	paymentID := uuid.MustParse(req.PaymentID)

	p, err := h.paymentSvc.Register(c.Request.Context(), ports.RegisterPaymentRequest{
		PaymentID:       paymentID,
		SenderAccountID: req.SenderAccountID,
		OriginalAmount:  *req.OriginalAmount,
		Destination:     req.Destination,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToPaymentResponse(p))
}

// Complete handles PUT /api/v1/payments/:paymentId/complete.
func (h *PaymentHandler) Complete(c *gin.Context) {
	paymentID, ok := paymentIDParam(c)
	if !ok {
		return
	}

	var req dto.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	p, err := h.paymentSvc.Complete(c.Request.Context(), paymentID, req.Outcome())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPaymentResponse(p))
}

// Fail handles PUT /api/v1/payments/:paymentId/error.
func (h *PaymentHandler) Fail(c *gin.Context) {
	paymentID, ok := paymentIDParam(c)
	if !ok {
		return
	}

	p, err := h.paymentSvc.Fail(c.Request.Context(), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPaymentResponse(p))
}

// Get handles GET /api/v1/payments/:paymentId.
func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, ok := paymentIDParam(c)
	if !ok {
		return
	}

	p, err := h.paymentSvc.Get(c.Request.Context(), paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPaymentResponse(p))
}

// paymentIDParam parses :paymentId, writing a validation error when malformed.
func paymentIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.Error(c, apperror.Validation("paymentId must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
