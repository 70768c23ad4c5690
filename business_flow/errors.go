// Package businessflow contains the core business logic of the notification pipeline and relay sessions
package businessflow

import (
	"errors"
	"fmt"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
)

// Business flow error constants
var (
	// Configuration errors
	ErrConfigurationMissing = errors.New("required configuration is missing")

	// Pipeline errors
	ErrPhoneRequired      = errors.New("phone number is required")
	ErrSubscriberNotFound = errors.New("farmer not found")

	// Gateway errors
	ErrGatewayUnavailable = services.ErrGatewayUnavailable
	ErrGatewaySendFailed  = services.ErrGatewaySendFailed

	// Verification errors
	ErrInvalidOTP              = errors.New("invalid OTP")
	ErrVerificationUnavailable = errors.New("verification service not configured")
	ErrVerificationFailed      = errors.New("verification request failed")
	ErrTokenRequired           = errors.New("access token is required")

	// Relay errors
	ErrRelayServiceUnavailable = errors.New("relay service not configured")
	ErrMissingParticipantInfo  = errors.New("missing participant information")
	ErrRelayProviderFailed     = errors.New("relay provider request failed")
	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionEnded            = errors.New("session has ended")
	ErrSessionExpired          = errors.New("session has expired")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsConfigurationMissing(err error) bool {
	return errors.Is(err, ErrConfigurationMissing)
}

func IsPhoneRequired(err error) bool {
	return errors.Is(err, ErrPhoneRequired)
}

func IsSubscriberNotFound(err error) bool {
	return errors.Is(err, ErrSubscriberNotFound)
}

func IsGatewayUnavailable(err error) bool {
	return errors.Is(err, ErrGatewayUnavailable)
}

func IsGatewaySendFailed(err error) bool {
	return errors.Is(err, ErrGatewaySendFailed)
}

func IsInvalidOTP(err error) bool {
	return errors.Is(err, ErrInvalidOTP)
}

func IsVerificationUnavailable(err error) bool {
	return errors.Is(err, ErrVerificationUnavailable)
}

func IsVerificationFailed(err error) bool {
	return errors.Is(err, ErrVerificationFailed)
}

func IsTokenRequired(err error) bool {
	return errors.Is(err, ErrTokenRequired)
}

func IsRelayServiceUnavailable(err error) bool {
	return errors.Is(err, ErrRelayServiceUnavailable)
}

func IsMissingParticipantInfo(err error) bool {
	return errors.Is(err, ErrMissingParticipantInfo)
}

func IsRelayProviderFailed(err error) bool {
	return errors.Is(err, ErrRelayProviderFailed)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsSessionEnded(err error) bool {
	return errors.Is(err, ErrSessionEnded)
}

func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// ProviderMessage returns the gateway's own error text when err carries one
func ProviderMessage(err error) string {
	var gwErr *services.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Error()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
