package businessflow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
)

const otpChannelSMS = "sms"

// OTPFlow handles farmer login through gateway-delivered one-time codes
type OTPFlow interface {
	SendOTP(ctx context.Context, request *dto.SendOTPRequest) (*dto.SendOTPResponse, error)
	VerifyOTP(ctx context.Context, request *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error)
	Logout(ctx context.Context, claims *services.TokenClaims) error
}

// OTPFlowImpl implements the OTP flow
type OTPFlowImpl struct {
	gateway      services.GatewayClient
	config       *config.GatewayConfig
	resolver     SubscriberResolver
	tokenService services.TokenService
	tokenTTL     time.Duration
}

// NewOTPFlow creates a new OTP flow instance. A nil tokenService disables farmer tokens.
func NewOTPFlow(
	gateway services.GatewayClient,
	cfg *config.GatewayConfig,
	resolver SubscriberResolver,
	tokenService services.TokenService,
	tokenTTL time.Duration,
) OTPFlow {
	return &OTPFlowImpl{
		gateway:      gateway,
		config:       cfg,
		resolver:     resolver,
		tokenService: tokenService,
		tokenTTL:     tokenTTL,
	}
}

// SendOTP starts an SMS verification for the phone
func (of *OTPFlowImpl) SendOTP(ctx context.Context, request *dto.SendOTPRequest) (*dto.SendOTPResponse, error) {
	phone := strings.TrimSpace(request.Phone)
	if phone == "" {
		return nil, NewBusinessError("PHONE_REQUIRED", "Phone number is required", ErrPhoneRequired)
	}
	if err := of.ensureConfigured(); err != nil {
		return nil, err
	}

	verification, err := of.gateway.StartVerification(ctx, phone, otpChannelSMS)
	if err != nil {
		log.Printf("Send OTP error for %s: %v", phone, err)
		return nil, NewBusinessError("SEND_OTP_FAILED", ProviderMessage(err), fmt.Errorf("%w: %w", ErrVerificationFailed, err))
	}

	return &dto.SendOTPResponse{SID: verification.SID, Status: verification.Status}, nil
}

// VerifyOTP checks the code; only an approved verification counts
func (of *OTPFlowImpl) VerifyOTP(ctx context.Context, request *dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	phone := strings.TrimSpace(request.Phone)
	code := strings.TrimSpace(request.Code)
	if phone == "" || code == "" {
		return nil, NewBusinessError("PHONE_AND_CODE_REQUIRED", "Phone number and code are required", ErrPhoneRequired)
	}
	if err := of.ensureConfigured(); err != nil {
		return nil, err
	}

	check, err := of.gateway.CheckVerification(ctx, phone, code)
	if err != nil {
		log.Printf("Verify OTP error for %s: %v", phone, err)
		return nil, NewBusinessError("VERIFY_OTP_FAILED", ProviderMessage(err), fmt.Errorf("%w: %w", ErrVerificationFailed, err))
	}
	if check.Status != services.VerificationStatusApproved {
		log.Printf("OTP for %s not approved: %s", phone, check.Status)
		return nil, NewBusinessError("INVALID_OTP", "Invalid or expired OTP", ErrInvalidOTP)
	}

	response := &dto.VerifyOTPResponse{Verified: true, Status: check.Status}
	of.attachFarmerToken(ctx, phone, response)
	return response, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (of *OTPFlowImpl) Logout(ctx context.Context, claims *services.TokenClaims) error {
	if claims == nil || claims.TokenID == "" {
		return NewBusinessError("TOKEN_REQUIRED", "Access token is required", ErrTokenRequired)
	}
	if of.tokenService == nil {
		return NewBusinessError("LOGOUT_UNAVAILABLE", "Token service not configured", ErrConfigurationMissing)
	}

	of.tokenService.RevokeToken(claims)
	log.Printf("Token %s for %s revoked", claims.TokenID, claims.Subject)
	return nil
}

func (of *OTPFlowImpl) ensureConfigured() error {
	if of.config == nil || of.config.VerifyServiceSID == "" {
		return NewBusinessError("VERIFY_NOT_CONFIGURED", "Verification service not configured", ErrVerificationUnavailable)
	}
	if err := of.gateway.Ready(); err != nil {
		return NewBusinessError("VERIFY_NOT_CONFIGURED", "Verification service not configured", fmt.Errorf("%w: %w", ErrVerificationUnavailable, err))
	}
	return nil
}

// attachFarmerToken issues a farmer token when the verified phone belongs to a farmer.
// Lookup or signing failures leave the response without a token.
func (of *OTPFlowImpl) attachFarmerToken(ctx context.Context, phone string, response *dto.VerifyOTPResponse) {
	if of.tokenService == nil || of.resolver == nil {
		return
	}

	subscriber, err := of.resolver.Resolve(ctx, phone)
	if err != nil {
		if !IsSubscriberNotFound(err) {
			log.Printf("Farmer lookup after OTP failed for %s: %v", phone, err)
		}
		return
	}

	token, _, err := of.tokenService.GenerateToken(subscriber.SurveyNumber, services.RoleFarmer)
	if err != nil {
		log.Printf("Failed to issue farmer token for %s: %v", subscriber.SurveyNumber, err)
		return
	}

	response.AccessToken = token
	response.TokenType = "Bearer"
	response.ExpiresIn = int(of.tokenTTL.Seconds())
	response.SurveyNumber = subscriber.SurveyNumber
}
