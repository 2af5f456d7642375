package handlers

import (
	"net/http"

	"turf-booking/internal/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type OTPHandler struct {
	otp *services.OTPService
}

func NewOTPHandler(otp *services.OTPService) *OTPHandler {
	return &OTPHandler{otp: otp}
}

type otpRequest struct {
	MobileNo string `json:"mobileno"`
	OrderID  string `json:"orderId"`
	OTP      string `json:"otp"`
}

// SendOTP - POST /sendotp
func (h *OTPHandler) SendOTP(e *core.RequestEvent) error {
	var req otpRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	orderID, err := h.otp.Send(e.Request.Context(), services.NormalizeMobile(req.MobileNo))
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"orderId": orderID})
}

// ResendOTP - POST /resendotp
func (h *OTPHandler) ResendOTP(e *core.RequestEvent) error {
	var req otpRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	orderID, err := h.otp.Resend(e.Request.Context(), services.NormalizeMobile(req.MobileNo))
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, map[string]string{"orderId": orderID})
}

// VerifyOTP - POST /verify
func (h *OTPHandler) VerifyOTP(e *core.RequestEvent) error {
	var req otpRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	result, err := h.otp.Verify(e.Request.Context(), services.NormalizeMobile(req.MobileNo), req.OrderID, req.OTP)
	if err != nil {
		return toAPIError(err)
	}

	return e.JSON(http.StatusOK, result)
}
