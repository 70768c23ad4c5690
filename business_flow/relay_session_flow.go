package businessflow

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// RelaySessionFlow manages masked-number sessions between two parties
type RelaySessionFlow interface {
	CreateSession(ctx context.Context, request *dto.CreateRelaySessionRequest, caller string) (*dto.RelaySessionDTO, error)
	EndSession(ctx context.Context, sessionID string) (*dto.EndRelaySessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.RelaySessionDTO, error)
	ActiveSession(ctx context.Context, sessionID string) (*dto.RelaySessionDTO, error)
	RequireActive(ctx context.Context, sessionID string) (*models.RelaySession, error)
}

// RelaySessionFlowImpl implements the relay session flow
type RelaySessionFlowImpl struct {
	gateway     services.GatewayClient
	config      *config.GatewayConfig
	sessionRepo repository.RelaySessionRepository
	ttl         time.Duration
	now         utils.Clock
}

// NewRelaySessionFlow creates a new relay session flow instance
func NewRelaySessionFlow(
	gateway services.GatewayClient,
	cfg *config.GatewayConfig,
	sessionRepo repository.RelaySessionRepository,
	ttl time.Duration,
	now utils.Clock,
) RelaySessionFlow {
	if ttl <= 0 {
		ttl = utils.RelaySessionTTL
	}
	if now == nil {
		now = utils.UTCNow
	}
	return &RelaySessionFlowImpl{
		gateway:     gateway,
		config:      cfg,
		sessionRepo: sessionRepo,
		ttl:         ttl,
		now:         now,
	}
}

// CreateSession opens a provider session, attaches both parties and stores the result
func (rf *RelaySessionFlowImpl) CreateSession(ctx context.Context, request *dto.CreateRelaySessionRequest, caller string) (*dto.RelaySessionDTO, error) {
	if err := validateParticipants(request); err != nil {
		relaySessionsTotal.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}
	if err := rf.ensureConfigured(); err != nil {
		relaySessionsTotal.WithLabelValues("create", "unavailable").Inc()
		return nil, err
	}

	startedAt := rf.now()
	uniqueName := fmt.Sprintf("session_%s_%s_%d", request.PartyAID, request.PartyBID, startedAt.UnixMilli())

	providerSession, err := rf.gateway.CreateProxySession(ctx, uniqueName, rf.ttl)
	if err != nil {
		relaySessionsTotal.WithLabelValues("create", "failed").Inc()
		return nil, NewBusinessError("RELAY_CREATE_FAILED", ProviderMessage(err), fmt.Errorf("%w: %w", ErrRelayProviderFailed, err))
	}

	maskedNumber, err := rf.attachParticipants(ctx, providerSession.SID, request)
	if err != nil {
		rf.discardProviderSession(ctx, providerSession.SID)
		relaySessionsTotal.WithLabelValues("create", "failed").Inc()
		return nil, NewBusinessError("RELAY_CREATE_FAILED", ProviderMessage(err), fmt.Errorf("%w: %w", ErrRelayProviderFailed, err))
	}

	session := &models.RelaySession{
		ID:                "session_" + uuid.New().String(),
		PartyAID:          request.PartyAID,
		PartyBID:          request.PartyBID,
		MaskedNumber:      maskedNumber,
		ProviderSessionID: providerSession.SID,
		StartedAt:         startedAt,
		CreatedBy:         caller,
	}
	if err := rf.sessionRepo.Save(ctx, session.ID, session, rf.ttl); err != nil {
		rf.discardProviderSession(ctx, providerSession.SID)
		relaySessionsTotal.WithLabelValues("create", "failed").Inc()
		return nil, NewBusinessError("RELAY_SAVE_FAILED", "Failed to store relay session", err)
	}

	relaySessionsTotal.WithLabelValues("create", "ok").Inc()
	log.Printf("Relay session %s created for %s and %s via %s", session.ID, session.PartyAID, session.PartyBID, maskedNumber)

	out := ToRelaySessionDTO(session, startedAt, rf.ttl)
	return &out, nil
}

// EndSession removes the provider session and stamps endedAt. Ending twice succeeds.
func (rf *RelaySessionFlowImpl) EndSession(ctx context.Context, sessionID string) (*dto.EndRelaySessionResponse, error) {
	session, err := rf.load(ctx, sessionID)
	if err != nil {
		relaySessionsTotal.WithLabelValues("end", "not_found").Inc()
		return nil, err
	}

	now := rf.now()
	switch session.State(now, rf.ttl) {
	case models.RelaySessionEnded:
		relaySessionsTotal.WithLabelValues("end", "already_ended").Inc()
		return &dto.EndRelaySessionResponse{Session: ToRelaySessionDTO(session, now, rf.ttl), AlreadyEnded: true}, nil
	case models.RelaySessionExpired:
		relaySessionsTotal.WithLabelValues("end", "not_found").Inc()
		return nil, NewBusinessError("SESSION_NOT_FOUND", "Session not found", ErrSessionNotFound)
	}

	if err := rf.ensureConfigured(); err != nil {
		relaySessionsTotal.WithLabelValues("end", "unavailable").Inc()
		return nil, err
	}

	if session.ProviderSessionID != "" {
		if err := rf.gateway.RemoveProxySession(ctx, session.ProviderSessionID); err != nil {
			relaySessionsTotal.WithLabelValues("end", "failed").Inc()
			return nil, NewBusinessError("RELAY_END_FAILED", ProviderMessage(err), fmt.Errorf("%w: %w", ErrRelayProviderFailed, err))
		}
	}

	session.EndedAt = &now
	remaining := utils.RemainingTTL(now, session.ExpiresAt(rf.ttl))
	if remaining < time.Second {
		remaining = time.Second
	}
	if err := rf.sessionRepo.Save(ctx, session.ID, session, remaining); err != nil {
		relaySessionsTotal.WithLabelValues("end", "failed").Inc()
		return nil, NewBusinessError("RELAY_SAVE_FAILED", "Failed to store relay session", err)
	}

	relaySessionsTotal.WithLabelValues("end", "ok").Inc()
	log.Printf("Relay session %s ended", session.ID)

	return &dto.EndRelaySessionResponse{Session: ToRelaySessionDTO(session, now, rf.ttl)}, nil
}

// GetSession returns a stored session with its computed state
func (rf *RelaySessionFlowImpl) GetSession(ctx context.Context, sessionID string) (*dto.RelaySessionDTO, error) {
	session, err := rf.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := ToRelaySessionDTO(session, rf.now(), rf.ttl)
	return &out, nil
}

// ActiveSession returns a session that can still carry calls. Ended and expired
// sessions are errors, unlike GetSession.
func (rf *RelaySessionFlowImpl) ActiveSession(ctx context.Context, sessionID string) (*dto.RelaySessionDTO, error) {
	session, err := rf.RequireActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := ToRelaySessionDTO(session, rf.now(), rf.ttl)
	return &out, nil
}

// RequireActive returns the session only while it can still carry calls
func (rf *RelaySessionFlowImpl) RequireActive(ctx context.Context, sessionID string) (*models.RelaySession, error) {
	session, err := rf.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.State(rf.now(), rf.ttl) {
	case models.RelaySessionEnded:
		return nil, NewBusinessError("SESSION_ENDED", "Session has ended", ErrSessionEnded)
	case models.RelaySessionExpired:
		return nil, NewBusinessError("SESSION_EXPIRED", "Session has expired", ErrSessionExpired)
	}
	return session, nil
}

func (rf *RelaySessionFlowImpl) load(ctx context.Context, sessionID string) (*models.RelaySession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "Session ID is required", ErrSessionNotFound)
	}

	session, err := rf.sessionRepo.ByID(ctx, sessionID)
	if err != nil {
		return nil, NewBusinessError("SESSION_LOOKUP_FAILED", "Failed to read relay session", err)
	}
	if session == nil {
		return nil, NewBusinessError("SESSION_NOT_FOUND", "Session not found", ErrSessionNotFound)
	}
	return session, nil
}

func (rf *RelaySessionFlowImpl) ensureConfigured() error {
	if rf.config == nil || rf.config.ProxyServiceSID == "" {
		return NewBusinessError("RELAY_NOT_CONFIGURED", "Relay service not configured", ErrRelayServiceUnavailable)
	}
	if err := rf.gateway.Ready(); err != nil {
		return NewBusinessError("RELAY_NOT_CONFIGURED", "Relay service not configured", fmt.Errorf("%w: %w", ErrRelayServiceUnavailable, err))
	}
	return nil
}

// attachParticipants adds both parties concurrently and returns the first pool number
func (rf *RelaySessionFlowImpl) attachParticipants(ctx context.Context, sessionSID string, request *dto.CreateRelaySessionRequest) (string, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := rf.gateway.AddProxyParticipant(gctx, sessionSID, request.PartyAPhone, "Party "+request.PartyAID)
		return err
	})
	g.Go(func() error {
		_, err := rf.gateway.AddProxyParticipant(gctx, sessionSID, request.PartyBPhone, "Party "+request.PartyBID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	numbers, err := rf.gateway.ListProxyNumbers(ctx)
	if err != nil {
		return "", err
	}
	if len(numbers) == 0 || numbers[0].PhoneNumber == "" {
		return utils.RelayPoolNumberUnavailable, nil
	}
	return numbers[0].PhoneNumber, nil
}

// discardProviderSession removes a half-built provider session; failures are only logged
func (rf *RelaySessionFlowImpl) discardProviderSession(ctx context.Context, sessionSID string) {
	if err := rf.gateway.RemoveProxySession(context.WithoutCancel(ctx), sessionSID); err != nil {
		log.Printf("Failed to remove provider session %s after partial create: %v", sessionSID, err)
	}
}

func validateParticipants(request *dto.CreateRelaySessionRequest) error {
	if request == nil {
		return NewBusinessError("MISSING_PARTICIPANT_INFO", "All fields are required", ErrMissingParticipantInfo)
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"vendorId", request.PartyAID},
		{"farmerId", request.PartyBID},
		{"vendorPhone", request.PartyAPhone},
		{"farmerPhone", request.PartyBPhone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return NewBusinessErrorf("MISSING_PARTICIPANT_INFO", "All fields are required (missing %s)", ErrMissingParticipantInfo, strings.Join(missing, ", "))
	}
	return nil
}

// ToRelaySessionDTO converts a stored session and computes its state at now
func ToRelaySessionDTO(s *models.RelaySession, now time.Time, ttl time.Duration) dto.RelaySessionDTO {
	return dto.RelaySessionDTO{
		ID:                s.ID,
		PartyAID:          s.PartyAID,
		PartyBID:          s.PartyBID,
		MaskedNumber:      s.MaskedNumber,
		ProviderSessionID: s.ProviderSessionID,
		StartedAt:         s.StartedAt,
		EndedAt:           s.EndedAt,
		ExpiresAt:         s.ExpiresAt(ttl),
		State:             string(s.State(now, ttl)),
	}
}
