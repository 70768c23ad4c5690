package businessflow

import (
	"context"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

const (
	diagnosticSecretPrefix = 10
	diagnosticStoreTimeout = 3 * time.Second
)

// DiagnosticFlow reports whether the gateway and store are usable
type DiagnosticFlow interface {
	Run(ctx context.Context) *dto.DiagnosticReport
}

// DiagnosticFlowImpl implements the diagnostic flow
type DiagnosticFlowImpl struct {
	config  *config.GatewayConfig
	gateway services.GatewayClient
	store   repository.KVStore
	now     utils.Clock
}

// NewDiagnosticFlow creates a new diagnostic flow instance
func NewDiagnosticFlow(cfg *config.GatewayConfig, gateway services.GatewayClient, store repository.KVStore, now utils.Clock) DiagnosticFlow {
	if now == nil {
		now = utils.UTCNow
	}
	return &DiagnosticFlowImpl{
		config:  cfg,
		gateway: gateway,
		store:   store,
		now:     now,
	}
}

// Run executes every check. Warnings do not fail the overall status.
func (df *DiagnosticFlowImpl) Run(ctx context.Context) *dto.DiagnosticReport {
	cfg := df.config
	if cfg == nil {
		cfg = &config.GatewayConfig{}
	}

	checks := map[string]dto.DiagnosticCheck{
		"gatewayCredentials": credentialsCheck(cfg),
		"messagingConfig":    messagingCheck(cfg),
		"baseUrl":            baseURLCheck(cfg),
		"verifyService":      optionalServiceCheck(cfg.VerifyServiceSID, "OTP login disabled"),
		"proxyService":       optionalServiceCheck(cfg.ProxyServiceSID, "Phone masking disabled"),
		"store":              df.storeCheck(ctx),
		"gatewayClient":      df.gatewayClientCheck(),
	}

	overall := dto.DiagnosticOK
	for _, c := range checks {
		if c.Status == dto.DiagnosticError {
			overall = dto.DiagnosticError
			break
		}
	}

	return &dto.DiagnosticReport{
		Timestamp: df.now(),
		Overall:   overall,
		Checks:    checks,
	}
}

func credentialsCheck(cfg *config.GatewayConfig) dto.DiagnosticCheck {
	check := dto.DiagnosticCheck{
		Status:  dto.DiagnosticOK,
		Message: "Credentials configured",
		Details: map[string]any{
			"accountSid": cfg.AccountSID != "",
			"authToken":  cfg.AuthToken != "",
		},
	}
	if !cfg.HasCredentials() {
		check.Status = dto.DiagnosticError
		check.Message = "Account SID or auth token missing"
	}
	return check
}

func messagingCheck(cfg *config.GatewayConfig) dto.DiagnosticCheck {
	details := map[string]any{
		"messagingServiceSid": cfg.MessagingServiceSID != "",
		"phoneNumber":         cfg.PhoneNumber != "",
	}
	if cfg.MessagingServiceSID != "" {
		details["messagingServiceSidPrefix"] = utils.MaskSecret(cfg.MessagingServiceSID, diagnosticSecretPrefix)
	}
	if cfg.PhoneNumber != "" {
		details["phoneNumberValue"] = cfg.PhoneNumber
	}

	if !cfg.HasSender() {
		return dto.DiagnosticCheck{Status: dto.DiagnosticError, Message: "No messaging service or sending number", Details: details}
	}
	return dto.DiagnosticCheck{Status: dto.DiagnosticOK, Message: "Sender configured", Details: details}
}

func baseURLCheck(cfg *config.GatewayConfig) dto.DiagnosticCheck {
	if cfg.BaseURL == "" {
		return dto.DiagnosticCheck{Status: dto.DiagnosticError, Message: "BASE_URL missing; delivery callbacks disabled"}
	}
	return dto.DiagnosticCheck{Status: dto.DiagnosticOK, Message: "Base URL configured", Details: map[string]any{"value": cfg.BaseURL}}
}

func optionalServiceCheck(sid, missing string) dto.DiagnosticCheck {
	if sid == "" {
		return dto.DiagnosticCheck{Status: dto.DiagnosticWarning, Message: missing}
	}
	return dto.DiagnosticCheck{
		Status:  dto.DiagnosticOK,
		Message: "Service configured",
		Details: map[string]any{"sidPrefix": utils.MaskSecret(sid, diagnosticSecretPrefix)},
	}
}

func (df *DiagnosticFlowImpl) storeCheck(ctx context.Context) dto.DiagnosticCheck {
	if df.store == nil {
		return dto.DiagnosticCheck{Status: dto.DiagnosticError, Message: "Record store not configured"}
	}
	pingCtx, cancel := context.WithTimeout(ctx, diagnosticStoreTimeout)
	defer cancel()
	if err := df.store.Ping(pingCtx); err != nil {
		return dto.DiagnosticCheck{Status: dto.DiagnosticError, Message: "Record store unreachable: " + err.Error()}
	}
	return dto.DiagnosticCheck{Status: dto.DiagnosticOK, Message: "Record store reachable"}
}

func (df *DiagnosticFlowImpl) gatewayClientCheck() dto.DiagnosticCheck {
	if df.gateway == nil {
		return dto.DiagnosticCheck{Status: dto.DiagnosticError, Message: "Gateway client not initialized", Details: map[string]any{"canConnect": false}}
	}
	if err := df.gateway.Ready(); err != nil {
		return dto.DiagnosticCheck{Status: dto.DiagnosticError, Message: "Cannot initialize: " + err.Error(), Details: map[string]any{"canConnect": false}}
	}
	return dto.DiagnosticCheck{Status: dto.DiagnosticOK, Message: "Initialized successfully", Details: map[string]any{"canConnect": true}}
}
