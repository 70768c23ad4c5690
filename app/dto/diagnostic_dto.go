package dto

import "time"

// Diagnostic check statuses
const (
	DiagnosticOK      = "ok"
	DiagnosticWarning = "warning"
	DiagnosticError   = "error"
)

// DiagnosticCheck is a single configuration or connectivity check
type DiagnosticCheck struct {
	Status  string         `json:"status" example:"ok"`
	Message string         `json:"message,omitempty" example:"Credentials configured"`
	Details map[string]any `json:"details,omitempty"`
}

// DiagnosticReport summarises whether the pipeline can send messages. Secrets
// appear only as presence flags or short prefixes.
type DiagnosticReport struct {
	Timestamp time.Time                  `json:"timestamp" example:"2024-06-01T10:30:00Z"`
	Overall   string                     `json:"overall" example:"ok"`
	Checks    map[string]DiagnosticCheck `json:"checks"`
}
