package businessflow_test

import (
	"sync"
	"testing"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	testutil "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/testing"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testGatewayConfig() *config.GatewayConfig {
	return &config.GatewayConfig{
		Provider:         "mock",
		AccountSID:       "AC00000000000000000000000000000000",
		AuthToken:        "test-auth-token",
		PhoneNumber:      "+15005550006",
		VerifyServiceSID: "VA00000000000000000000000000000000",
		ProxyServiceSID:  "KS00000000000000000000000000000000",
		BaseURL:          "https://hobli.example",
	}
}

// pipeline wires the notification flow over an in-process store and mock gateway
type pipeline struct {
	store    repository.KVStore
	fixtures *testutil.TestFixtures
	gateway  *services.MockGatewayClient
	clock    *testClock
	tracker  businessflow.DeliveryTracker
	flow     businessflow.NotificationFlow
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	fixtures := testutil.NewMemoryFixtures()
	store := fixtures.Store
	gateway := services.NewMockGatewayClient()
	clock := newTestClock()

	dedupe := businessflow.NewDedupeGuard(repository.NewDedupeMarkerRepository(store), utils.DefaultDedupeWindow, clock.Now)
	tracker := businessflow.NewDeliveryTracker(repository.NewNotificationLogRepository(store), dedupe, clock.Now)
	flow := businessflow.NewNotificationFlow(
		dedupe,
		businessflow.NewSubscriberResolver(repository.NewSubscriberRepository(store)),
		businessflow.NewRateReader(repository.NewRateRepository(store)),
		businessflow.NewMessageComposer(utils.DefaultHelpline, utils.MaxSMSLength),
		services.NewDispatchClient(gateway, testGatewayConfig()),
		tracker,
	)

	return &pipeline{
		store:    store,
		fixtures: fixtures,
		gateway:  gateway,
		clock:    clock,
		tracker:  tracker,
		flow:     flow,
	}
}
