package callwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransition(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Transition
		wantErr  bool
	}{
		{name: "ringing with number", line: "RINGING +919999999999", expected: Transition{State: StateRinging, Number: "+919999999999"}},
		{name: "ringing without number", line: "RINGING", expected: Transition{State: StateRinging}},
		{name: "lower case", line: "offhook", expected: Transition{State: StateOffhook}},
		{name: "idle with padding", line: "  IDLE  ", expected: Transition{State: StateIdle}},
		{name: "unknown state", line: "DIALING +91", wantErr: true},
		{name: "blank", line: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransition(tt.line)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTracker_Observe(t *testing.T) {
	ring := func(n string) Transition { return Transition{State: StateRinging, Number: n} }
	offhook := Transition{State: StateOffhook}
	idle := Transition{State: StateIdle}

	tests := []struct {
		name     string
		sequence []Transition
		reports  []string
	}{
		{name: "ring then idle is missed", sequence: []Transition{ring("+919999999999"), idle}, reports: []string{"+919999999999"}},
		{name: "answered call is not reported", sequence: []Transition{ring("+919999999999"), offhook, idle}},
		{name: "outgoing call is not reported", sequence: []Transition{offhook, idle}},
		{name: "hidden number is not reported", sequence: []Transition{ring(""), idle}},
		{name: "idle without ring", sequence: []Transition{idle, idle}},
		{name: "one report per ring", sequence: []Transition{ring("+911"), idle, idle}, reports: []string{"+911"}},
		{name: "latest ringing number wins", sequence: []Transition{ring("+911"), ring("+912"), idle}, reports: []string{"+912"}},
		{
			name:     "back to back calls",
			sequence: []Transition{ring("+911"), idle, ring("+912"), offhook, idle, ring("+913"), idle},
			reports:  []string{"+911", "+913"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker()
			var reports []string
			for _, tr := range tt.sequence {
				if phone, missed := tracker.Observe(tr); missed {
					reports = append(reports, phone)
				}
			}
			assert.Equal(t, tt.reports, reports)
		})
	}
}
