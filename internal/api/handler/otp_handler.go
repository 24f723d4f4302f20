package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/dashboard-api/internal/api/metrics"
	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required,len=6"`
}

type OTPHandler struct {
	otp ports.OTPService
}

func NewOTPHandler(otp ports.OTPService) *OTPHandler {
	return &OTPHandler{otp: otp}
}

func (h *OTPHandler) Send(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.otp.Send(c.Request().Context(), req.Email); err != nil {
		metrics.OTPTotal.WithLabelValues("send", "failure").Inc()
		return err
	}
	metrics.OTPTotal.WithLabelValues("send", "success").Inc()
	return respond(c, http.StatusOK, "OTP sent successfully", nil)
}

func (h *OTPHandler) Verify(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.otp.Verify(c.Request().Context(), req.Email, req.OTP, requestMeta(c)); err != nil {
		metrics.OTPTotal.WithLabelValues("verify", "failure").Inc()
		return err
	}
	metrics.OTPTotal.WithLabelValues("verify", "success").Inc()
	return respond(c, http.StatusOK, "Email verified successfully", nil)
}
