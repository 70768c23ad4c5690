package handlers

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/middleware"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
)

// RelayHandlerInterface defines the phone masking endpoints
type RelayHandlerInterface interface {
	CreateSession(c fiber.Ctx) error
	EndSession(c fiber.Ctx) error
	GetSession(c fiber.Ctx) error
	ActiveSession(c fiber.Ctx) error
}

// RelayHandler handles masked-number session requests. All routes require authentication.
type RelayHandler struct {
	baseHandler
	relayFlow businessflow.RelaySessionFlow
}

// NewRelayHandler creates a new relay handler
func NewRelayHandler(relayFlow businessflow.RelaySessionFlow) RelayHandlerInterface {
	return &RelayHandler{
		baseHandler: newBaseHandler(),
		relayFlow:   relayFlow,
	}
}

// CreateSession connects two parties through a masked number
// @Summary Create relay session
// @Tags Relay
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRelaySessionRequest true "Participants"
// @Success 201 {object} dto.APIResponse{data=dto.RelaySessionDTO} "Session created"
// @Failure 400 {object} dto.APIResponse "Missing participant information"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Gateway error"
// @Failure 503 {object} dto.APIResponse "Relay service not configured"
// @Router /relay/create-session [post]
func (h *RelayHandler) CreateSession(c fiber.Ctx) error {
	var req dto.CreateRelaySessionRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	subject, _ := middleware.GetSubjectFromContext(c)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	session, err := h.relayFlow.CreateSession(ctx, &req, subject)
	if err != nil {
		log.Printf("Create relay session by %s failed: %v", subject, err)
		return h.businessErrorResponse(c, err, "Failed to create session", "RELAY_CREATE_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusCreated, "Session created", session)
}

// EndSession terminates a relay session
// @Summary End relay session
// @Description Removes the gateway session and marks it ended. Ending an ended session succeeds.
// @Tags Relay
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EndRelaySessionRequest true "Session id"
// @Success 200 {object} dto.APIResponse{data=dto.EndRelaySessionResponse} "Session ended"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Failure 500 {object} dto.APIResponse "Gateway error"
// @Router /relay/end-session [post]
func (h *RelayHandler) EndSession(c fiber.Ctx) error {
	var req dto.EndRelaySessionRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.relayFlow.EndSession(ctx, req.SessionID)
	if err != nil {
		log.Printf("End relay session %s failed: %v", req.SessionID, err)
		return h.businessErrorResponse(c, err, "Failed to end session", "RELAY_END_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Session ended", result)
}

// GetSession returns a session with its current state
// @Summary Get relay session
// @Tags Relay
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Success 200 {object} dto.APIResponse{data=dto.RelaySessionDTO}
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Router /relay/sessions/{id} [get]
func (h *RelayHandler) GetSession(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	session, err := h.relayFlow.GetSession(ctx, c.Params("id"))
	if err != nil {
		return h.businessErrorResponse(c, err, "Failed to get session", "RELAY_GET_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Session retrieved successfully", session)
}

// ActiveSession returns a session only while it can still carry calls
// @Summary Check relay session is active
// @Tags Relay
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Success 200 {object} dto.APIResponse{data=dto.RelaySessionDTO}
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Session not found"
// @Failure 409 {object} dto.APIResponse "Session ended"
// @Failure 410 {object} dto.APIResponse "Session expired"
// @Router /relay/sessions/{id}/active [get]
func (h *RelayHandler) ActiveSession(c fiber.Ctx) error {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	session, err := h.relayFlow.ActiveSession(ctx, c.Params("id"))
	if err != nil {
		return h.businessErrorResponse(c, err, "Failed to check session", "RELAY_GET_FAILED")
	}
	return h.SuccessResponse(c, fiber.StatusOK, "Session is active", session)
}
