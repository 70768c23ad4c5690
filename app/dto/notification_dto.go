// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// SendSMSRequest triggers a price SMS to a registered farmer
type SendSMSRequest struct {
	Phone string `json:"phone" validate:"required,min=5,max=20" example:"+919999999999"`
}

// MissedCallReportRequest is posted by the call listener on the field phone
type MissedCallReportRequest struct {
	Phone string `json:"phone" validate:"required,min=5,max=20" example:"+919999999999"`
}

// NotificationResult is the outcome of one pipeline run
type NotificationResult struct {
	Success    bool   `json:"success" example:"true"`
	Message    string `json:"message" example:"SMS sent successfully"`
	MessageSID string `json:"messageSid,omitempty" example:"SM0123456789abcdef0123456789abcdef"`
	FarmerName string `json:"farmerName,omitempty" example:"Ravi"`
	LogID      string `json:"logId,omitempty" example:"msg_550e8400-e29b-41d4-a716-446655440000"`
	Suppressed bool   `json:"suppressed" example:"false"`
}

// CallWebhookRequest is the form posted by the voice gateway
type CallWebhookRequest struct {
	From         string `form:"From"`
	CallStatus   string `form:"CallStatus"`
	CallDuration string `form:"CallDuration"`
	CallSID      string `form:"CallSid"`
}

// StatusWebhookRequest is the delivery report posted by the SMS gateway
type StatusWebhookRequest struct {
	MessageSID    string `form:"MessageSid"`
	MessageStatus string `form:"MessageStatus"`
	ErrorCode     string `form:"ErrorCode"`
	ErrorMessage  string `form:"ErrorMessage"`
}

// NotificationLogItem is one notification log row
type NotificationLogItem struct {
	ID                string     `json:"id" example:"msg_550e8400-e29b-41d4-a716-446655440000"`
	ToPhone           string     `json:"to_phone" example:"+919999999999"`
	ProviderMessageID string     `json:"service_sid" example:"SM0123456789abcdef0123456789abcdef"`
	MessageType       string     `json:"message_type" example:"missed_call_response"`
	Snippet           string     `json:"snippet" example:"Rice ₹2000/quintal. Token at Hobli office."`
	Status            string     `json:"status" example:"delivered"`
	FailureReason     *string    `json:"failure_reason"`
	CreatedAt         time.Time  `json:"timestamp" example:"2024-06-01T10:30:00Z"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// NotificationLogListResponse lists notification log rows, newest first
type NotificationLogListResponse struct {
	Items []NotificationLogItem `json:"items"`
	Total int                   `json:"total" example:"42"`
}
