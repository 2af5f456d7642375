package handlers

import (
	"net/http"

	"turf-booking/internal/services"
	"turf-booking/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder - POST /payments/createOrder
func (h *PaymentHandler) CreateOrder(e *core.RequestEvent) error {
	var req services.CreateOrderRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	order, err := h.payments.CreateOrder(e.Request.Context(), req)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, order)
}

// VerifyPayment - POST /payments/verifyPayment
func (h *PaymentHandler) VerifyPayment(e *core.RequestEvent) error {
	var req services.VerifyPaymentRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	payment, err := h.payments.VerifyPayment(e.Request.Context(), req)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message": "Payment verified successfully",
		"payment": payment,
	})
}

// RecordTurfPayment - POST /payments/turf
func (h *PaymentHandler) RecordTurfPayment(e *core.RequestEvent) error {
	var payment models.TurfPayment
	if err := e.BindBody(&payment); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	saved, err := h.payments.RecordTurfPayment(e.Request.Context(), &payment)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusCreated, saved)
}

type earningsRequest struct {
	OwnerMobileNo string `json:"ownerMobileNo"`
	Interval      string `json:"interval"`
}

// Earnings - POST /payments/earnings
func (h *PaymentHandler) Earnings(e *core.RequestEvent) error {
	var req earningsRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	buckets, err := h.payments.Earnings(e.Request.Context(), req.OwnerMobileNo, req.Interval)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, buckets)
}

// WeekTotal - POST /payments/week
func (h *PaymentHandler) WeekTotal(e *core.RequestEvent) error {
	var req earningsRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	total, err := h.payments.WeekTotal(e.Request.Context(), req.OwnerMobileNo)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{"totalAmount": total})
}

// PaymentsSince - GET /payments/interval?ownerMobileNo=&interval=
func (h *PaymentHandler) PaymentsSince(e *core.RequestEvent) error {
	query := e.Request.URL.Query()

	payments, err := h.payments.PaymentsSince(e.Request.Context(), query.Get("ownerMobileNo"), query.Get("interval"))
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, payments)
}

// PaymentSuccess - GET /payments/payment-success/{paymentId}
func (h *PaymentHandler) PaymentSuccess(e *core.RequestEvent) error {
	paymentID := e.Request.PathValue("paymentId")

	payment, err := h.payments.PaymentSuccess(e.Request.Context(), paymentID)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, payment)
}
