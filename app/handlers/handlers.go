// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
)

const defaultRequestTimeout = 30 * time.Second

// baseHandler carries the response helpers every handler shares
type baseHandler struct {
	validator *validator.Validate
}

func newBaseHandler() baseHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return baseHandler{validator: v}
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *baseHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// bindJSON decodes and validates the body, writing the 400 response itself on failure
func (h *baseHandler) bindJSON(c fiber.Ctx, req any) (bool, error) {
	if err := c.Bind().JSON(req); err != nil {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
		}
		var validationErrors []string
		for _, fe := range fieldErrors {
			validationErrors = append(validationErrors, getValidationErrorMessage(fe))
		}
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, validationErrors[0], "VALIDATION_ERROR", validationErrors)
	}
	return true, nil
}

// businessErrorResponse maps flow errors onto HTTP status codes
func (h *baseHandler) businessErrorResponse(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	message, code := fallbackMessage, fallbackCode
	var be *businessflow.BusinessError
	if errors.As(err, &be) {
		message, code = be.Message, be.Code
	}

	status := fiber.StatusInternalServerError
	switch {
	case businessflow.IsPhoneRequired(err),
		businessflow.IsMissingParticipantInfo(err),
		businessflow.IsInvalidOTP(err):
		status = fiber.StatusBadRequest
	case businessflow.IsTokenRequired(err):
		status = fiber.StatusUnauthorized
	case businessflow.IsSubscriberNotFound(err),
		businessflow.IsSessionNotFound(err):
		status = fiber.StatusNotFound
	case businessflow.IsSessionEnded(err):
		status = fiber.StatusConflict
	case businessflow.IsSessionExpired(err):
		status = fiber.StatusGone
	case businessflow.IsGatewayUnavailable(err),
		businessflow.IsVerificationUnavailable(err),
		businessflow.IsRelayServiceUnavailable(err),
		businessflow.IsConfigurationMissing(err):
		status = fiber.StatusServiceUnavailable
	case businessflow.IsGatewaySendFailed(err),
		businessflow.IsVerificationFailed(err),
		businessflow.IsRelayProviderFailed(err):
		message = businessflow.ProviderMessage(err)
	}

	return h.ErrorResponse(c, status, message, code, nil)
}

// requestContext derives a bounded context from the request
func (h *baseHandler) requestContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), defaultRequestTimeout)
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
