package models

import "time"

// MessageType identifies which channel triggered a notification
type MessageType string

const (
	MessageTypeMissedCallResponse MessageType = "missed_call_response"
	MessageTypeManualSend         MessageType = "manual_send"
	MessageTypeAndroidMissedCall  MessageType = "android_missed_call"
)

// Delivery statuses reported by the gateway
const (
	DeliveryStatusQueued      = "queued"
	DeliveryStatusSent        = "sent"
	DeliveryStatusDelivered   = "delivered"
	DeliveryStatusUndelivered = "undelivered"
	DeliveryStatusFailed      = "failed"
)

// SnippetLength is the maximum number of characters kept from a message body
const SnippetLength = 100

// NotificationLogEntry is stored under sms:log:{id} and never deleted
type NotificationLogEntry struct {
	ID                string      `json:"id"`
	ToPhone           string      `json:"to_phone"`
	ProviderMessageID string      `json:"service_sid"`
	MessageType       MessageType `json:"message_type"`
	Snippet           string      `json:"snippet"`
	Status            string      `json:"status"`
	FailureReason     *string     `json:"failure_reason"`
	CreatedAt         time.Time   `json:"timestamp"`
	UpdatedAt         *time.Time  `json:"updated_at,omitempty"`
}

// DedupeMarker is stored under sms:last:{phone}
type DedupeMarker struct {
	TimestampMs int64 `json:"timestamp"`
}

// Time returns the marker as a UTC time
func (m DedupeMarker) Time() time.Time {
	return time.UnixMilli(m.TimestampMs).UTC()
}
