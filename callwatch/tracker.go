// Package callwatch detects unanswered incoming calls on the field phone and
// reports them to the notification service.
package callwatch

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// State is a telephony call state as reported by the handset
type State string

const (
	StateRinging State = "RINGING"
	StateOffhook State = "OFFHOOK"
	StateIdle    State = "IDLE"
)

// ErrUnknownState is returned for lines that do not name a call state
var ErrUnknownState = errors.New("unknown call state")

// Transition is one call state change. Number is only set for RINGING.
type Transition struct {
	State  State
	Number string
}

// ParseTransition reads lines such as "RINGING +919999999999", "OFFHOOK" or "IDLE"
func ParseTransition(line string) (Transition, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Transition{}, fmt.Errorf("%w: empty line", ErrUnknownState)
	}

	state := State(strings.ToUpper(fields[0]))
	switch state {
	case StateRinging:
		t := Transition{State: state}
		if len(fields) > 1 {
			t.Number = fields[1]
		}
		return t, nil
	case StateOffhook, StateIdle:
		return Transition{State: state}, nil
	default:
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownState, fields[0])
	}
}

// Tracker turns call state transitions into missed-call detections.
// A ring that returns to idle without going off hook is missed; an answered
// call (RINGING, OFFHOOK, IDLE) is not.
type Tracker struct {
	mu      sync.Mutex
	ringing bool
	number  string
}

// NewTracker creates a tracker in the idle state
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe applies a transition and returns the caller's number when it completes a missed call
func (t *Tracker) Observe(tr Transition) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch tr.State {
	case StateRinging:
		t.ringing = true
		t.number = strings.TrimSpace(tr.Number)
	case StateOffhook:
		t.ringing = false
		t.number = ""
	case StateIdle:
		number, missed := t.number, t.ringing && t.number != ""
		t.ringing = false
		t.number = ""
		return number, missed
	}
	return "", false
}
