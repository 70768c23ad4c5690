package businessflow

import (
	"strconv"
	"strings"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

// MinAnsweredCallSeconds is the shortest call treated as answered
const MinAnsweredCallSeconds = 2

// UnknownCallDuration marks a CallDuration that was sent but could not be read.
// It never counts as a short call.
const UnknownCallDuration = -1

// IsMissedCall decides whether a call should trigger an SMS. A call is missed when the
// gateway reports no-answer, busy or failed, or when it lasted under two seconds
// whatever its status.
func IsMissedCall(rawStatus string, durationSeconds int) bool {
	switch strings.ToLower(strings.TrimSpace(rawStatus)) {
	case models.CallStatusNoAnswer, models.CallStatusBusy, models.CallStatusFailed:
		return true
	}
	if durationSeconds == UnknownCallDuration {
		return false
	}
	return durationSeconds < MinAnsweredCallSeconds
}

// ParseCallDuration reads the CallDuration form value. A missing value is 0 and a
// malformed one is UnknownCallDuration.
func ParseCallDuration(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Some carriers report fractional seconds
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f < 0 {
			return UnknownCallDuration
		}
		return int(f)
	}
	if n < 0 {
		return UnknownCallDuration
	}
	return n
}

// NewCallEvent builds a CallEvent from raw webhook values
func NewCallEvent(from, callSID, status, duration string) models.CallEvent {
	return models.CallEvent{
		FromNumber:      strings.Clone(strings.TrimSpace(from)),
		ProviderCallID:  strings.Clone(callSID),
		RawStatus:       strings.Clone(status),
		DurationSeconds: ParseCallDuration(duration),
	}
}
