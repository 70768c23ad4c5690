package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/middleware"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
)

// OTPHandlerInterface defines the farmer login endpoints
type OTPHandlerInterface interface {
	SendOTP(c fiber.Ctx) error
	VerifyOTP(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// OTPHandler handles OTP login requests
type OTPHandler struct {
	baseHandler
	otpFlow businessflow.OTPFlow
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpFlow businessflow.OTPFlow) OTPHandlerInterface {
	return &OTPHandler{
		baseHandler: newBaseHandler(),
		otpFlow:     otpFlow,
	}
}

// SendOTP starts phone verification
// @Summary Send OTP
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.SendOTPRequest true "Phone to verify"
// @Success 200 {object} dto.APIResponse{data=dto.SendOTPResponse} "OTP sent"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Gateway error"
// @Failure 503 {object} dto.APIResponse "Verification service not configured"
// @Router /auth/send-otp [post]
func (h *OTPHandler) SendOTP(c fiber.Ctx) error {
	var req dto.SendOTPRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.otpFlow.SendOTP(ctx, &req)
	if err != nil {
		return h.businessErrorResponse(c, err, "Failed to send OTP", "SEND_OTP_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "OTP sent", result)
}

// VerifyOTP checks an OTP code
// @Summary Verify OTP
// @Description Verifies the code. A farmer access token is included when the phone belongs to a registered farmer.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Phone and code"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyOTPResponse} "OTP verified"
// @Failure 400 {object} dto.APIResponse "Invalid or expired OTP"
// @Failure 500 {object} dto.APIResponse "Gateway error"
// @Failure 503 {object} dto.APIResponse "Verification service not configured"
// @Router /auth/verify-otp [post]
func (h *OTPHandler) VerifyOTP(c fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.otpFlow.VerifyOTP(ctx, &req)
	if err != nil {
		return h.businessErrorResponse(c, err, "Failed to verify OTP", "VERIFY_OTP_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "OTP verified", result)
}

// Logout revokes the bearer token
// @Summary Logout
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *OTPHandler) Logout(c fiber.Ctx) error {
	claims, _ := middleware.GetTokenClaimsFromContext(c)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.otpFlow.Logout(ctx, claims); err != nil {
		return h.businessErrorResponse(c, err, "Failed to logout", "LOGOUT_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Logged out", nil)
}
