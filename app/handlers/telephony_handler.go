package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
)

// EmptyTwiML is the voice gateway reply that ends the call without further action
const EmptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// TelephonyHandlerInterface defines the gateway webhook endpoints
type TelephonyHandlerInterface interface {
	IncomingCall(c fiber.Ctx) error
	SMSStatus(c fiber.Ctx) error
}

// TelephonyHandler handles gateway webhooks. Both endpoints always answer 200
// so the gateway never retries or alerts.
type TelephonyHandler struct {
	baseHandler
	notificationFlow businessflow.NotificationFlow
}

// NewTelephonyHandler creates a new telephony webhook handler
func NewTelephonyHandler(notificationFlow businessflow.NotificationFlow) TelephonyHandlerInterface {
	return &TelephonyHandler{
		baseHandler:      newBaseHandler(),
		notificationFlow: notificationFlow,
	}
}

// IncomingCall handles the voice webhook
// @Summary Incoming call webhook
// @Description Classifies the call and sends a rate SMS for missed calls. Always returns empty TwiML.
// @Tags Telephony
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param From formData string true "Caller number"
// @Param CallStatus formData string false "Call status"
// @Param CallDuration formData string false "Call duration in seconds"
// @Param CallSid formData string false "Gateway call id"
// @Success 200 {string} string "Empty TwiML"
// @Router /telephony/calls [post]
func (h *TelephonyHandler) IncomingCall(c fiber.Ctx) error {
	var req dto.CallWebhookRequest
	if err := c.Bind().Form(&req); err != nil {
		log.Printf("Invalid call webhook payload: %v", err)
		return EmptyTwiMLResponse(c)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	event := businessflow.NewCallEvent(req.From, req.CallSID, req.CallStatus, req.CallDuration)
	if _, err := h.notificationFlow.HandleCallEvent(ctx, event); err != nil {
		log.Printf("Missed call handling failed for %s (%s): %v", event.FromNumber, event.ProviderCallID, err)
	}

	return EmptyTwiMLResponse(c)
}

// SMSStatus handles delivery reports
// @Summary SMS status webhook
// @Description Applies a delivery report to the notification log. Always returns OK.
// @Tags Telephony
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param MessageSid formData string true "Gateway message id"
// @Param MessageStatus formData string true "Delivery status"
// @Param ErrorCode formData string false "Gateway error code"
// @Param ErrorMessage formData string false "Gateway error message"
// @Success 200 {string} string "OK"
// @Router /telephony/sms-status [post]
func (h *TelephonyHandler) SMSStatus(c fiber.Ctx) error {
	var req dto.StatusWebhookRequest
	if err := c.Bind().Form(&req); err != nil {
		log.Printf("Invalid status webhook payload: %v", err)
		return StatusOK(c)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if _, err := h.notificationFlow.HandleStatusCallback(ctx, &req); err != nil {
		log.Printf("SMS status update failed for %s: %v", req.MessageSID, err)
	}

	return StatusOK(c)
}

// EmptyTwiMLResponse writes the reply the voice webhook always returns
func EmptyTwiMLResponse(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/xml")
	return c.Status(fiber.StatusOK).SendString(EmptyTwiML)
}

// StatusOK writes the reply the delivery status webhook always returns
func StatusOK(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}
