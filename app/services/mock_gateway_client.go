package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// MockGatewayClient implements GatewayClient for testing and local runs
type MockGatewayClient struct {
	mu sync.Mutex

	SentMessages   []MockGatewayMessage
	Verifications  []MockVerification
	Sessions       map[string]*ProxySession
	Participants   map[string][]ProxyParticipant
	RemovedSession []string
	PoolNumbers    []string

	// Approved codes per phone; any other code is left pending
	ApprovedCodes map[string]string

	SendErr        error
	VerifyErr      error
	SessionErr     error
	ParticipantErr error
	RemoveErr      error
	NotReady       error

	counter int
	calls   int
}

// MockGatewayMessage records one SendMessage call
type MockGatewayMessage struct {
	Request MessageRequest
	SID     string
	SentAt  time.Time
}

// MockVerification records one verification call
type MockVerification struct {
	To      string
	Channel string
	Code    string
	Check   bool
}

// NewMockGatewayClient creates a new mock gateway with one pool number
func NewMockGatewayClient() *MockGatewayClient {
	return &MockGatewayClient{
		SentMessages:  make([]MockGatewayMessage, 0),
		Sessions:      make(map[string]*ProxySession),
		Participants:  make(map[string][]ProxyParticipant),
		PoolNumbers:   []string{"+15005550006"},
		ApprovedCodes: make(map[string]string),
	}
}

func (m *MockGatewayClient) nextSID(prefix string) string {
	m.counter++
	return fmt.Sprintf("%s%032d", prefix, m.counter)
}

func (m *MockGatewayClient) Ready() error {
	return m.NotReady
}

func (m *MockGatewayClient) SendMessage(_ context.Context, req MessageRequest) (*GatewayMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.SendErr != nil {
		return nil, m.SendErr
	}
	sid := m.nextSID("SM")
	m.SentMessages = append(m.SentMessages, MockGatewayMessage{Request: req, SID: sid, SentAt: utils.UTCNow()})
	log.Printf("Mock gateway message %s to %s: %s", sid, req.To, req.Body)

	return &GatewayMessage{SID: sid, To: req.To, From: req.From, Body: req.Body, Status: "queued"}, nil
}

func (m *MockGatewayClient) StartVerification(_ context.Context, to, channel string) (*Verification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	m.Verifications = append(m.Verifications, MockVerification{To: to, Channel: channel})
	return &Verification{SID: m.nextSID("VE"), To: to, Channel: channel, Status: VerificationStatusPending}, nil
}

func (m *MockGatewayClient) CheckVerification(_ context.Context, to, code string) (*Verification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	m.Verifications = append(m.Verifications, MockVerification{To: to, Code: code, Check: true})

	status := VerificationStatusPending
	if expected, ok := m.ApprovedCodes[to]; ok && expected == code {
		status = VerificationStatusApproved
	}
	return &Verification{SID: m.nextSID("VE"), To: to, Channel: "sms", Status: status, Valid: status == VerificationStatusApproved}, nil
}

func (m *MockGatewayClient) CreateProxySession(_ context.Context, uniqueName string, ttl time.Duration) (*ProxySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.SessionErr != nil {
		return nil, m.SessionErr
	}
	s := &ProxySession{SID: m.nextSID("KC"), UniqueName: uniqueName, Status: "open", TTL: int(ttl.Seconds())}
	m.Sessions[s.SID] = s
	return s, nil
}

func (m *MockGatewayClient) AddProxyParticipant(_ context.Context, sessionSID, identifier, friendlyName string) (*ProxyParticipant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.ParticipantErr != nil {
		return nil, m.ParticipantErr
	}
	if _, ok := m.Sessions[sessionSID]; !ok {
		return nil, &GatewayError{Code: 20404, Message: "session not found", Status: 404, HTTPStatus: 404}
	}
	p := ProxyParticipant{SID: m.nextSID("KP"), SessionSID: sessionSID, Identifier: identifier, FriendlyName: friendlyName}
	if len(m.PoolNumbers) > 0 {
		p.ProxyIdentifier = m.PoolNumbers[0]
	}
	m.Participants[sessionSID] = append(m.Participants[sessionSID], p)
	return &p, nil
}

func (m *MockGatewayClient) ListProxyNumbers(context.Context) ([]ProxyPhoneNumber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	numbers := make([]ProxyPhoneNumber, 0, len(m.PoolNumbers))
	for i, n := range m.PoolNumbers {
		numbers = append(numbers, ProxyPhoneNumber{SID: fmt.Sprintf("PN%032d", i+1), PhoneNumber: n})
	}
	return numbers, nil
}

func (m *MockGatewayClient) RemoveProxySession(_ context.Context, sessionSID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Sessions, sessionSID)
	m.RemovedSession = append(m.RemovedSession, sessionSID)
	return nil
}

// GetSentMessages returns a copy of all sent mock messages
func (m *MockGatewayClient) GetSentMessages() []MockGatewayMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockGatewayMessage(nil), m.SentMessages...)
}

// ParticipantsOf returns the participants attached to a session
func (m *MockGatewayClient) ParticipantsOf(sessionSID string) []ProxyParticipant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProxyParticipant(nil), m.Participants[sessionSID]...)
}

// CallCount returns how many gateway calls of any kind were made
func (m *MockGatewayClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ClearSentMessages clears the sent messages list
func (m *MockGatewayClient) ClearSentMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = make([]MockGatewayMessage, 0)
}
