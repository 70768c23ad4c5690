package models

// Call statuses the voice webhook reports
const (
	CallStatusCompleted = "completed"
	CallStatusNoAnswer  = "no-answer"
	CallStatusBusy      = "busy"
	CallStatusFailed    = "failed"
)

// CallEvent is one inbound call-state notification. It is never persisted.
type CallEvent struct {
	FromNumber      string
	ProviderCallID  string
	RawStatus       string
	DurationSeconds int
}
