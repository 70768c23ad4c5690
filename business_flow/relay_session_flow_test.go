package businessflow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	testutil "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/testing"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

type relayHarness struct {
	gateway *services.MockGatewayClient
	clock   *testClock
	repo    repository.RelaySessionRepository
	flow    businessflow.RelaySessionFlow
}

func newRelayHarness(cfg *config.GatewayConfig) *relayHarness {
	gateway := services.NewMockGatewayClient()
	clock := newTestClock()
	repo := repository.NewRelaySessionRepository(testutil.NewMemoryFixtures().Store)
	return &relayHarness{
		gateway: gateway,
		clock:   clock,
		repo:    repo,
		flow:    businessflow.NewRelaySessionFlow(gateway, cfg, repo, utils.RelaySessionTTL, clock.Now),
	}
}

func validRelayRequest() *dto.CreateRelaySessionRequest {
	return &dto.CreateRelaySessionRequest{
		PartyAID:    "vendor_17",
		PartyBID:    "farmer_42",
		PartyAPhone: "+918888888888",
		PartyBPhone: "+919999999999",
	}
}

func TestRelaySessionFlow_Create(t *testing.T) {
	ctx := context.Background()
	h := newRelayHarness(testGatewayConfig())

	session, err := h.flow.CreateSession(ctx, validRelayRequest(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, session.ID, "session_")
	assert.Equal(t, "vendor_17", session.PartyAID)
	assert.Equal(t, "farmer_42", session.PartyBID)
	assert.Equal(t, "+15005550006", session.MaskedNumber)
	assert.NotEmpty(t, session.ProviderSessionID)
	assert.Nil(t, session.EndedAt)
	assert.Equal(t, string(models.RelaySessionActive), session.State)
	assert.Equal(t, h.clock.Now().Add(2*time.Hour), session.ExpiresAt)

	participants := h.gateway.ParticipantsOf(session.ProviderSessionID)
	require.Len(t, participants, 2)
	names := []string{participants[0].FriendlyName, participants[1].FriendlyName}
	assert.ElementsMatch(t, []string{"Party vendor_17", "Party farmer_42"}, names)

	stored, err := h.repo.ByID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "user-1", stored.CreatedBy)
	assert.Equal(t, session.ProviderSessionID, stored.ProviderSessionID)
}

func TestRelaySessionFlow_EmptyPool(t *testing.T) {
	h := newRelayHarness(testGatewayConfig())
	h.gateway.PoolNumbers = nil

	session, err := h.flow.CreateSession(context.Background(), validRelayRequest(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, utils.RelayPoolNumberUnavailable, session.MaskedNumber)
}

func TestRelaySessionFlow_CreateRejectedBeforeProvider(t *testing.T) {
	noProxy := testGatewayConfig()
	noProxy.ProxyServiceSID = ""

	tests := []struct {
		name     string
		cfg      *config.GatewayConfig
		mutate   func(*dto.CreateRelaySessionRequest)
		expectFn func(error) bool
	}{
		{
			name:     "missing party b phone",
			cfg:      testGatewayConfig(),
			mutate:   func(r *dto.CreateRelaySessionRequest) { r.PartyBPhone = "" },
			expectFn: businessflow.IsMissingParticipantInfo,
		},
		{
			name:     "missing party a id",
			cfg:      testGatewayConfig(),
			mutate:   func(r *dto.CreateRelaySessionRequest) { r.PartyAID = "   " },
			expectFn: businessflow.IsMissingParticipantInfo,
		},
		{
			name:     "relay service not configured",
			cfg:      noProxy,
			mutate:   func(*dto.CreateRelaySessionRequest) {},
			expectFn: businessflow.IsRelayServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRelayHarness(tt.cfg)
			req := validRelayRequest()
			tt.mutate(req)

			session, err := h.flow.CreateSession(context.Background(), req, "user-1")
			require.Error(t, err)
			assert.Nil(t, session)
			assert.True(t, tt.expectFn(err), "unexpected error: %v", err)
			assert.Zero(t, h.gateway.CallCount())
		})
	}
}

func TestRelaySessionFlow_RemovesProviderSessionOnPartialCreate(t *testing.T) {
	h := newRelayHarness(testGatewayConfig())
	h.gateway.ParticipantErr = &services.GatewayError{Code: 80103, Message: "Participant identifier is invalid", Status: 400}

	session, err := h.flow.CreateSession(context.Background(), validRelayRequest(), "user-1")
	require.Error(t, err)
	assert.Nil(t, session)
	assert.True(t, businessflow.IsRelayProviderFailed(err))
	assert.Equal(t, "Participant identifier is invalid", businessflow.ProviderMessage(err))

	require.Len(t, h.gateway.RemovedSession, 1)
	assert.Empty(t, h.gateway.Sessions)
}

func TestRelaySessionFlow_EndLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newRelayHarness(testGatewayConfig())

	created, err := h.flow.CreateSession(ctx, validRelayRequest(), "user-1")
	require.NoError(t, err)

	active, err := h.flow.RequireActive(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, active.ID)

	current, err := h.flow.ActiveSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RelaySessionActive), current.State)

	h.clock.Advance(10 * time.Minute)
	ended, err := h.flow.EndSession(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ended.AlreadyEnded)
	require.NotNil(t, ended.Session.EndedAt)
	assert.True(t, h.clock.Now().Equal(*ended.Session.EndedAt))
	assert.Equal(t, string(models.RelaySessionEnded), ended.Session.State)
	assert.Equal(t, []string{created.ProviderSessionID}, h.gateway.RemovedSession)

	_, err = h.flow.RequireActive(ctx, created.ID)
	assert.True(t, businessflow.IsSessionEnded(err))
	_, err = h.flow.ActiveSession(ctx, created.ID)
	assert.True(t, businessflow.IsSessionEnded(err))

	again, err := h.flow.EndSession(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, again.AlreadyEnded)
	assert.Len(t, h.gateway.RemovedSession, 1)

	got, err := h.flow.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RelaySessionEnded), got.State)
}

func TestRelaySessionFlow_Expired(t *testing.T) {
	ctx := context.Background()
	h := newRelayHarness(testGatewayConfig())

	created, err := h.flow.CreateSession(ctx, validRelayRequest(), "user-1")
	require.NoError(t, err)

	h.clock.Advance(2*time.Hour + time.Second)

	_, err = h.flow.RequireActive(ctx, created.ID)
	assert.True(t, businessflow.IsSessionExpired(err))
	_, err = h.flow.ActiveSession(ctx, created.ID)
	assert.True(t, businessflow.IsSessionExpired(err))

	got, err := h.flow.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RelaySessionExpired), got.State)

	_, err = h.flow.EndSession(ctx, created.ID)
	assert.True(t, businessflow.IsSessionNotFound(err))
	assert.Empty(t, h.gateway.RemovedSession)
}

func TestRelaySessionFlow_UnknownSession(t *testing.T) {
	ctx := context.Background()
	h := newRelayHarness(testGatewayConfig())

	_, err := h.flow.EndSession(ctx, "session_missing")
	assert.True(t, businessflow.IsSessionNotFound(err))

	_, err = h.flow.GetSession(ctx, "")
	assert.True(t, businessflow.IsSessionNotFound(err))

	_, err = h.flow.RequireActive(ctx, "session_missing")
	assert.True(t, businessflow.IsSessionNotFound(err))
}

func TestRelaySessionFlow_EndProviderFailure(t *testing.T) {
	ctx := context.Background()
	h := newRelayHarness(testGatewayConfig())

	created, err := h.flow.CreateSession(ctx, validRelayRequest(), "user-1")
	require.NoError(t, err)

	h.gateway.RemoveErr = errors.New("proxy unavailable")
	_, err = h.flow.EndSession(ctx, created.ID)
	assert.True(t, businessflow.IsRelayProviderFailed(err))

	_, err = h.flow.RequireActive(ctx, created.ID)
	assert.NoError(t, err)
}
