package callwatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
)

type recordingReporter struct {
	phones []string
	err    error
}

func (r *recordingReporter) ReportMissedCall(_ context.Context, phone string) (*dto.NotificationResult, error) {
	r.phones = append(r.phones, phone)
	if r.err != nil {
		return nil, r.err
	}
	return &dto.NotificationResult{Success: true, Message: "SMS sent successfully"}, nil
}

func TestWatch(t *testing.T) {
	input := strings.Join([]string{
		"# field phone session",
		"RINGING +919999999999",
		"IDLE",
		"RINGING +918888888888",
		"OFFHOOK",
		"IDLE",
		"garbage",
		"",
		"RINGING +917777777777",
		"IDLE",
	}, "\n")

	reporter := &recordingReporter{}
	err := Watch(context.Background(), strings.NewReader(input), NewTracker(), reporter)
	require.NoError(t, err)
	assert.Equal(t, []string{"+919999999999", "+917777777777"}, reporter.phones)
}

func TestWatch_ReportFailureContinues(t *testing.T) {
	input := "RINGING +911\nIDLE\nRINGING +912\nIDLE\n"

	reporter := &recordingReporter{err: errors.New("connection refused")}
	err := Watch(context.Background(), strings.NewReader(input), NewTracker(), reporter)
	require.NoError(t, err)
	assert.Equal(t, []string{"+911", "+912"}, reporter.phones)
}

func TestWatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reporter := &recordingReporter{}
	err := Watch(ctx, strings.NewReader("RINGING +911\nIDLE\n"), NewTracker(), reporter)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reporter.phones)
}
