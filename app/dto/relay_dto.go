package dto

import "time"

// CreateRelaySessionRequest connects two parties through a masked number
type CreateRelaySessionRequest struct {
	PartyAID    string `json:"vendorId" example:"vendor_17"`
	PartyBID    string `json:"farmerId" example:"farmer_1717171717"`
	PartyAPhone string `json:"vendorPhone" example:"+918888888888"`
	PartyBPhone string `json:"farmerPhone" example:"+919999999999"`
}

// EndRelaySessionRequest terminates a relay session
type EndRelaySessionRequest struct {
	SessionID string `json:"sessionId" validate:"required" example:"session_550e8400-e29b-41d4-a716-446655440000"`
}

// RelaySessionDTO is the stored session plus its computed state
type RelaySessionDTO struct {
	ID                string     `json:"id" example:"session_550e8400-e29b-41d4-a716-446655440000"`
	PartyAID          string     `json:"vendor_id" example:"vendor_17"`
	PartyBID          string     `json:"farmer_id" example:"farmer_1717171717"`
	MaskedNumber      string     `json:"proxy_number" example:"+15005550006"`
	ProviderSessionID string     `json:"session_sid" example:"KC0123456789abcdef0123456789abcdef"`
	StartedAt         time.Time  `json:"started_at" example:"2024-06-01T10:30:00Z"`
	EndedAt           *time.Time `json:"ended_at"`
	ExpiresAt         time.Time  `json:"expires_at" example:"2024-06-01T12:30:00Z"`
	State             string     `json:"state" example:"active"`
}

// EndRelaySessionResponse reports a terminated session
type EndRelaySessionResponse struct {
	Session      RelaySessionDTO `json:"session"`
	AlreadyEnded bool            `json:"already_ended" example:"false"`
}
