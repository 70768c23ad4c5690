package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
)

// Dispatch errors
var (
	ErrGatewayUnavailable = errors.New("SMS gateway not configured")
	ErrGatewaySendFailed  = errors.New("SMS gateway send failed")
)

// StatusCallbackPath receives delivery status reports from the gateway
const StatusCallbackPath = "/telephony/sms-status"

// DispatchResult is the gateway's acceptance of a message
type DispatchResult struct {
	ProviderMessageID string
	Status            string
}

// DispatchClient sends a single SMS through the gateway
type DispatchClient interface {
	Send(ctx context.Context, toPhone, body string) (*DispatchResult, error)
}

// DispatchClientImpl implements DispatchClient
type DispatchClientImpl struct {
	gateway GatewayClient
	config  *config.GatewayConfig
}

// NewDispatchClient creates a new dispatch client
func NewDispatchClient(gateway GatewayClient, cfg *config.GatewayConfig) DispatchClient {
	return &DispatchClientImpl{
		gateway: gateway,
		config:  cfg,
	}
}

// Send uses the messaging service when configured, otherwise the fixed sending number
func (d *DispatchClientImpl) Send(ctx context.Context, toPhone, body string) (*DispatchResult, error) {
	if err := d.gateway.Ready(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if !d.config.HasSender() {
		return nil, fmt.Errorf("%w: messaging service sid or phone number is required", ErrGatewayUnavailable)
	}

	req := MessageRequest{
		To:   toPhone,
		Body: body,
	}
	if d.config.MessagingServiceSID != "" {
		req.MessagingServiceSID = d.config.MessagingServiceSID
	} else {
		req.From = d.config.PhoneNumber
	}
	if d.config.BaseURL != "" {
		req.StatusCallback = d.config.BaseURL + StatusCallbackPath
	}

	msg, err := d.gateway.SendMessage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatewaySendFailed, err)
	}

	return &DispatchResult{
		ProviderMessageID: msg.SID,
		Status:            msg.Status,
	}, nil
}
