package models

import "time"

// RelaySessionState is derived from timestamps, never stored
type RelaySessionState string

const (
	RelaySessionCreated RelaySessionState = "created"
	RelaySessionActive  RelaySessionState = "active"
	RelaySessionEnded   RelaySessionState = "ended"
	RelaySessionExpired RelaySessionState = "expired"
)

// RelaySession is a masked-number conversation between two parties,
// stored under proxy:session:{id}
type RelaySession struct {
	ID                string     `json:"id"`
	PartyAID          string     `json:"vendor_id"`
	PartyBID          string     `json:"farmer_id"`
	MaskedNumber      string     `json:"proxy_number"`
	ProviderSessionID string     `json:"session_sid"`
	StartedAt         time.Time  `json:"started_at"`
	EndedAt           *time.Time `json:"ended_at"`
	CreatedBy         string     `json:"created_by,omitempty"`
}

// State computes the lifecycle state at now for the given ttl
func (s *RelaySession) State(now time.Time, ttl time.Duration) RelaySessionState {
	switch {
	case s.EndedAt != nil:
		return RelaySessionEnded
	case now.After(s.StartedAt.Add(ttl)):
		return RelaySessionExpired
	case s.ProviderSessionID == "":
		return RelaySessionCreated
	default:
		return RelaySessionActive
	}
}

// ExpiresAt returns when the session stops being usable
func (s *RelaySession) ExpiresAt(ttl time.Duration) time.Time {
	return s.StartedAt.Add(ttl)
}
