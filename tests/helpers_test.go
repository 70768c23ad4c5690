// Package tests contains HTTP integration tests that drive the full router
package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/handlers"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/middleware"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/router"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	testutil "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/testing"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

const testSecret = "integration-test-secret-key-0123456789"

func testConfig() *config.ProductionConfig {
	return &config.ProductionConfig{
		Server: config.ServerConfig{
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
			BodyLimit:    1024 * 1024,
		},
		Security: config.SecurityConfig{
			AllowedOrigins:  []string{"http://localhost:5173"},
			AllowedMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AuthRateLimit:   1000,
			GlobalRateLimit: 1000,
			RateLimitWindow: time.Minute,
		},
		JWT: config.JWTConfig{
			SecretKey: testSecret,
			TokenTTL:  time.Hour,
			Issuer:    "hobli-notify",
			Audience:  "hobli-notify-api",
		},
		Gateway: config.GatewayConfig{
			Provider:         "mock",
			AccountSID:       "AC00000000000000000000000000000000",
			AuthToken:        "test-auth-token",
			PhoneNumber:      "+15005550006",
			VerifyServiceSID: "VA00000000000000000000000000000000",
			ProxyServiceSID:  "KS00000000000000000000000000000000",
			BaseURL:          "https://hobli.example",
		},
		Store: config.StoreConfig{Provider: "memory"},
		Notification: config.NotificationConfig{
			DedupeWindow:     utils.DefaultDedupeWindow,
			Helpline:         utils.DefaultHelpline,
			RelaySessionTTL:  utils.RelaySessionTTL,
			MaxMessageLength: utils.MaxSMSLength,
		},
		Metrics:    config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Deployment: config.DeploymentConfig{Environment: "development", Version: "test"},
	}
}

// testServer is the full HTTP surface over an in-process store and mock gateway
type testServer struct {
	app      *fiber.App
	gateway  *services.MockGatewayClient
	fixtures *testutil.TestFixtures
	tokens   services.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := testConfig()
	fixtures := testutil.NewMemoryFixtures()
	store := fixtures.Store
	gateway := services.NewMockGatewayClient()

	tokens, err := services.NewTokenService(cfg.JWT.TokenTTL, cfg.JWT.Issuer, cfg.JWT.Audience, false, "", "", cfg.JWT.SecretKey)
	require.NoError(t, err)

	resolver := businessflow.NewSubscriberResolver(repository.NewSubscriberRepository(store))
	dedupe := businessflow.NewDedupeGuard(repository.NewDedupeMarkerRepository(store), cfg.Notification.DedupeWindow, utils.UTCNow)
	notificationFlow := businessflow.NewNotificationFlow(
		dedupe,
		resolver,
		businessflow.NewRateReader(repository.NewRateRepository(store)),
		businessflow.NewMessageComposer(cfg.Notification.Helpline, cfg.Notification.MaxMessageLength),
		services.NewDispatchClient(gateway, &cfg.Gateway),
		businessflow.NewDeliveryTracker(repository.NewNotificationLogRepository(store), dedupe, utils.UTCNow),
	)

	h := router.Handlers{
		Telephony: handlers.NewTelephonyHandler(notificationFlow),
		SMS:       handlers.NewSMSHandler(notificationFlow, businessflow.NewDiagnosticFlow(&cfg.Gateway, gateway, store, utils.UTCNow)),
		OTP:       handlers.NewOTPHandler(businessflow.NewOTPFlow(gateway, &cfg.Gateway, resolver, tokens, cfg.JWT.TokenTTL)),
		Relay: handlers.NewRelayHandler(businessflow.NewRelaySessionFlow(
			gateway, &cfg.Gateway, repository.NewRelaySessionRepository(store), cfg.Notification.RelaySessionTTL, utils.UTCNow,
		)),
	}

	r := router.NewFiberRouter(cfg, h, middleware.NewAuthMiddleware(tokens))
	r.SetupRoutes()

	return &testServer{
		app:      r.GetApp(),
		gateway:  gateway,
		fixtures: fixtures,
		tokens:   tokens,
	}
}

func (s *testServer) token(t *testing.T, subject, role string) string {
	t.Helper()
	token, _, err := s.tokens.GenerateToken(subject, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (s *testServer) postJSON(t *testing.T, path string, payload any, token string) (*http.Response, []byte) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(t, req)
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req)
}

func (s *testServer) get(t *testing.T, path, token string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(t, req)
}

// decodeData unwraps dto.APIResponse.Data into out
func decodeData(t *testing.T, body []byte, out any) dto.APIResponse {
	t.Helper()
	var envelope struct {
		dto.APIResponse
		Data  json.RawMessage `json:"data"`
		Error dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	envelope.APIResponse.Error = envelope.Error
	return envelope.APIResponse
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	resp := decodeData(t, body, nil)
	detail, ok := resp.Error.(dto.ErrorDetail)
	require.True(t, ok)
	return detail.Code
}
