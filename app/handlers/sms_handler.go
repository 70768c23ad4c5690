package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
)

// SMSHandlerInterface defines the SMS API endpoints
type SMSHandlerInterface interface {
	Send(c fiber.Ctx) error
	MissedCall(c fiber.Ctx) error
	Logs(c fiber.Ctx) error
	ExportLogs(c fiber.Ctx) error
	Diagnostic(c fiber.Ctx) error
}

// SMSHandler handles manual sends, field phone reports and log access
type SMSHandler struct {
	baseHandler
	notificationFlow businessflow.NotificationFlow
	diagnosticFlow   businessflow.DiagnosticFlow
}

// NewSMSHandler creates a new SMS handler
func NewSMSHandler(notificationFlow businessflow.NotificationFlow, diagnosticFlow businessflow.DiagnosticFlow) SMSHandlerInterface {
	return &SMSHandler{
		baseHandler:      newBaseHandler(),
		notificationFlow: notificationFlow,
		diagnosticFlow:   diagnosticFlow,
	}
}

// Send handles a manual rate SMS request
// @Summary Send rate SMS
// @Description Sends current crop rates to a registered farmer
// @Tags SMS
// @Accept json
// @Produce json
// @Param request body dto.SendSMSRequest true "Farmer phone"
// @Success 200 {object} dto.NotificationResult "SMS sent or suppressed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Farmer not found"
// @Failure 500 {object} dto.APIResponse "Gateway error"
// @Failure 503 {object} dto.APIResponse "Gateway not configured"
// @Router /sms/send [post]
func (h *SMSHandler) Send(c fiber.Ctx) error {
	var req dto.SendSMSRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.notificationFlow.SendManual(ctx, &req)
	if err != nil {
		log.Printf("Manual SMS to %s failed: %v", req.Phone, err)
		return h.businessErrorResponse(c, err, "Failed to send SMS", "SMS_SEND_FAILED")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// MissedCall handles a missed call reported by the field phone
// @Summary Report missed call
// @Description Called by the call listener app when a call rings out
// @Tags SMS
// @Accept json
// @Produce json
// @Param request body dto.MissedCallReportRequest true "Caller phone"
// @Success 200 {object} dto.NotificationResult "SMS sent or suppressed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Farmer not found"
// @Failure 500 {object} dto.APIResponse "Gateway error"
// @Router /api/missed-call [post]
func (h *SMSHandler) MissedCall(c fiber.Ctx) error {
	var req dto.MissedCallReportRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.notificationFlow.HandleMissedCallReport(ctx, &req)
	if err != nil {
		log.Printf("Reported missed call from %s failed: %v", req.Phone, err)
		return h.businessErrorResponse(c, err, "Failed to send SMS", "SMS_SEND_FAILED")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Logs lists notification log entries
// @Summary List SMS logs
// @Tags SMS
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.NotificationLogListResponse}
// @Failure 401 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /sms/logs [get]
func (h *SMSHandler) Logs(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	logs, err := h.notificationFlow.ListLogs(ctx)
	if err != nil {
		log.Println("List SMS logs failed:", err)
		return h.businessErrorResponse(c, err, "Failed to list SMS logs", "LIST_LOGS_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "SMS logs retrieved successfully", logs)
}

// ExportLogs downloads the notification log as a workbook
// @Summary Export SMS logs
// @Tags SMS
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel workbook"
// @Failure 401 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse
// @Router /sms/logs/export [get]
func (h *SMSHandler) ExportLogs(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	filename, data, err := h.notificationFlow.ExportLogsExcel(ctx)
	if err != nil {
		log.Println("Export SMS logs failed:", err)
		return h.businessErrorResponse(c, err, "Failed to generate Excel", "DOWNLOAD_FAILED")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(data)
}

// Diagnostic reports gateway and store configuration
// @Summary SMS diagnostics
// @Description Reports which gateway settings are present. Secrets are shown only as presence flags or prefixes.
// @Tags SMS
// @Produce json
// @Success 200 {object} dto.DiagnosticReport
// @Router /sms/diagnostic [get]
func (h *SMSHandler) Diagnostic(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	return c.Status(fiber.StatusOK).JSON(h.diagnosticFlow.Run(ctx))
}
