package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/config"
)

// ErrGatewayNotConfigured is returned when account credentials or a required service id are absent
var ErrGatewayNotConfigured = errors.New("gateway not configured")

// GatewayError is the error body returned by the gateway
type GatewayError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Status     int    `json:"status"`
	MoreInfo   string `json:"more_info,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned status %d", e.HTTPStatus)
}

// MessageRequest describes one outbound SMS
type MessageRequest struct {
	To                  string
	Body                string
	From                string
	MessagingServiceSID string
	StatusCallback      string
}

// GatewayMessage is the gateway's view of a created message
type GatewayMessage struct {
	SID          string `json:"sid"`
	To           string `json:"to"`
	From         string `json:"from"`
	Body         string `json:"body"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Verification is a verification attempt
type Verification struct {
	SID        string `json:"sid"`
	ServiceSID string `json:"service_sid"`
	To         string `json:"to"`
	Channel    string `json:"channel"`
	Status     string `json:"status"`
	Valid      bool   `json:"valid"`
}

// Verification statuses
const (
	VerificationStatusPending  = "pending"
	VerificationStatusApproved = "approved"
	VerificationStatusCanceled = "canceled"
	VerificationStatusExpired  = "expired"
)

// ProxySession is a masked-number session held by the gateway
type ProxySession struct {
	SID        string `json:"sid"`
	UniqueName string `json:"unique_name"`
	Status     string `json:"status"`
	TTL        int    `json:"ttl"`
}

// ProxyParticipant is one party attached to a proxy session
type ProxyParticipant struct {
	SID             string `json:"sid"`
	SessionSID      string `json:"session_sid"`
	Identifier      string `json:"identifier"`
	FriendlyName    string `json:"friendly_name"`
	ProxyIdentifier string `json:"proxy_identifier"`
}

// ProxyPhoneNumber is a number in the proxy service pool
type ProxyPhoneNumber struct {
	SID         string `json:"sid"`
	PhoneNumber string `json:"phone_number"`
}

// GatewayClient talks to the SMS, verification and number-masking APIs
type GatewayClient interface {
	SendMessage(ctx context.Context, req MessageRequest) (*GatewayMessage, error)
	StartVerification(ctx context.Context, to, channel string) (*Verification, error)
	CheckVerification(ctx context.Context, to, code string) (*Verification, error)
	CreateProxySession(ctx context.Context, uniqueName string, ttl time.Duration) (*ProxySession, error)
	AddProxyParticipant(ctx context.Context, sessionSID, identifier, friendlyName string) (*ProxyParticipant, error)
	ListProxyNumbers(ctx context.Context) ([]ProxyPhoneNumber, error)
	RemoveProxySession(ctx context.Context, sessionSID string) error
	// Ready reports whether account credentials are present
	Ready() error
}

// TwilioClient implements GatewayClient over the Twilio REST API
type TwilioClient struct {
	config *config.GatewayConfig
	client *http.Client
}

// NewTwilioClient creates a gateway client. Missing credentials are not an error
// here; calls fail with ErrGatewayNotConfigured instead.
func NewTwilioClient(cfg *config.GatewayConfig, httpClient *http.Client) GatewayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &TwilioClient{
		config: cfg,
		client: httpClient,
	}
}

func (c *TwilioClient) Ready() error {
	if !c.config.HasCredentials() {
		return fmt.Errorf("%w: account sid and auth token are required", ErrGatewayNotConfigured)
	}
	return nil
}

// SendMessage handles POST /2010-04-01/Accounts/{AccountSid}/Messages.json
func (c *TwilioClient) SendMessage(ctx context.Context, req MessageRequest) (*GatewayMessage, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("To", req.To)
	form.Set("Body", req.Body)
	if req.MessagingServiceSID != "" {
		form.Set("MessagingServiceSid", req.MessagingServiceSID)
	} else {
		form.Set("From", req.From)
	}
	if req.StatusCallback != "" {
		form.Set("StatusCallback", req.StatusCallback)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(c.config.APIBaseURL, "/"), url.PathEscape(c.config.AccountSID))

	var msg GatewayMessage
	if err := c.do(ctx, http.MethodPost, endpoint, form, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// StartVerification handles POST /v2/Services/{sid}/Verifications
func (c *TwilioClient) StartVerification(ctx context.Context, to, channel string) (*Verification, error) {
	base, err := c.verifyBase()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("Channel", channel)

	var v Verification
	if err := c.do(ctx, http.MethodPost, base+"/Verifications", form, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CheckVerification handles POST /v2/Services/{sid}/VerificationCheck
func (c *TwilioClient) CheckVerification(ctx context.Context, to, code string) (*Verification, error) {
	base, err := c.verifyBase()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("Code", code)

	var v Verification
	if err := c.do(ctx, http.MethodPost, base+"/VerificationCheck", form, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateProxySession handles POST /v1/Services/{sid}/Sessions
func (c *TwilioClient) CreateProxySession(ctx context.Context, uniqueName string, ttl time.Duration) (*ProxySession, error) {
	base, err := c.proxyBase()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("UniqueName", uniqueName)
	if ttl > 0 {
		form.Set("Ttl", strconv.Itoa(int(ttl.Seconds())))
	}

	var s ProxySession
	if err := c.do(ctx, http.MethodPost, base+"/Sessions", form, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AddProxyParticipant handles POST /v1/Services/{sid}/Sessions/{sid}/Participants
func (c *TwilioClient) AddProxyParticipant(ctx context.Context, sessionSID, identifier, friendlyName string) (*ProxyParticipant, error) {
	base, err := c.proxyBase()
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("Identifier", identifier)
	form.Set("FriendlyName", friendlyName)

	var p ProxyParticipant
	endpoint := fmt.Sprintf("%s/Sessions/%s/Participants", base, url.PathEscape(sessionSID))
	if err := c.do(ctx, http.MethodPost, endpoint, form, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProxyNumbers handles GET /v1/Services/{sid}/PhoneNumbers
func (c *TwilioClient) ListProxyNumbers(ctx context.Context) ([]ProxyPhoneNumber, error) {
	base, err := c.proxyBase()
	if err != nil {
		return nil, err
	}

	var page struct {
		PhoneNumbers []ProxyPhoneNumber `json:"phone_numbers"`
	}
	if err := c.do(ctx, http.MethodGet, base+"/PhoneNumbers", nil, &page); err != nil {
		return nil, err
	}
	return page.PhoneNumbers, nil
}

// RemoveProxySession handles DELETE /v1/Services/{sid}/Sessions/{sid}
func (c *TwilioClient) RemoveProxySession(ctx context.Context, sessionSID string) error {
	base, err := c.proxyBase()
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/Sessions/%s", base, url.PathEscape(sessionSID))
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *TwilioClient) verifyBase() (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}
	if c.config.VerifyServiceSID == "" {
		return "", fmt.Errorf("%w: verify service sid is required", ErrGatewayNotConfigured)
	}
	return fmt.Sprintf("%s/v2/Services/%s",
		strings.TrimRight(c.config.VerifyBaseURL, "/"), url.PathEscape(c.config.VerifyServiceSID)), nil
}

func (c *TwilioClient) proxyBase() (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}
	if c.config.ProxyServiceSID == "" {
		return "", fmt.Errorf("%w: proxy service sid is required", ErrGatewayNotConfigured)
	}
	return fmt.Sprintf("%s/v1/Services/%s",
		strings.TrimRight(c.config.ProxyBaseURL, "/"), url.PathEscape(c.config.ProxyServiceSID)), nil
}

// do sends a form-encoded request with basic auth and decodes the JSON reply into out
func (c *TwilioClient) do(ctx context.Context, method, endpoint string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.SetBasicAuth(c.config.AccountSID, c.config.AuthToken)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		gwErr := &GatewayError{HTTPStatus: resp.StatusCode}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, gwErr)
		}
		return gwErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
