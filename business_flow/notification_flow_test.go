package businessflow_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	businessflow "github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/business_flow"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

const ricePhone = "+919999999999"

func seedRiceFarmer(t *testing.T, p *pipeline) *models.Subscriber {
	t.Helper()
	ctx := context.Background()
	s, err := p.fixtures.CreateTestSubscriber(ctx, "Ravi", ricePhone, "Rice")
	require.NoError(t, err)
	require.NoError(t, p.fixtures.SetRates(ctx, map[string]float64{"Rice": 2000, "Ragi": 3100}))
	return s
}

func logCount(t *testing.T, p *pipeline) int {
	t.Helper()
	logs, err := p.flow.ListLogs(context.Background())
	require.NoError(t, err)
	return logs.Total
}

func TestNotificationFlow_DedupeWindow(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	seedRiceFarmer(t, p)

	first, err := p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.False(t, first.Suppressed)
	assert.NotEmpty(t, first.MessageSID)
	assert.Len(t, p.gateway.GetSentMessages(), 1)
	assert.Equal(t, 1, logCount(t, p))

	// A different channel inside the window shares the same marker
	p.clock.Advance(5 * time.Minute)
	calls := p.gateway.CallCount()
	second, err := p.flow.HandleMissedCallReport(ctx, &dto.MissedCallReportRequest{Phone: ricePhone})
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.True(t, second.Suppressed)
	assert.Equal(t, "SMS already sent recently", second.Message)
	assert.Empty(t, second.MessageSID)
	assert.Equal(t, calls, p.gateway.CallCount())
	assert.Equal(t, 1, logCount(t, p))

	p.clock.Advance(6 * time.Minute)
	third, err := p.flow.HandleCallEvent(ctx, businessflow.NewCallEvent(ricePhone, "CA1", "no-answer", "0"))
	require.NoError(t, err)
	assert.False(t, third.Suppressed)
	assert.NotEqual(t, first.MessageSID, third.MessageSID)
	assert.Len(t, p.gateway.GetSentMessages(), 2)
	assert.Equal(t, 2, logCount(t, p))
}

func TestNotificationFlow_DedupeAcrossPhoneForms(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	seedRiceFarmer(t, p)

	first, err := p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)
	assert.False(t, first.Suppressed)

	p.clock.Advance(time.Minute)
	second, err := p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: strings.TrimPrefix(ricePhone, "+")})
	require.NoError(t, err)
	assert.True(t, second.Suppressed)
	assert.Len(t, p.gateway.GetSentMessages(), 1)
	assert.Equal(t, 1, logCount(t, p))
}

func TestNotificationFlow_RiceScenario(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	seedRiceFarmer(t, p)

	result, err := p.flow.HandleCallEvent(ctx, businessflow.NewCallEvent(ricePhone, "CA1", "completed", "1"))
	require.NoError(t, err)
	assert.Equal(t, "SMS sent successfully", result.Message)
	assert.Equal(t, "Ravi", result.FarmerName)
	assert.NotEmpty(t, result.LogID)

	sent := p.gateway.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, ricePhone, sent[0].Request.To)
	assert.Equal(t, "Rice ₹2000/quintal. Token at Hobli office. Helpline: 1800-XXX-XXXX", sent[0].Request.Body)
	assert.Equal(t, "https://hobli.example/telephony/sms-status", sent[0].Request.StatusCallback)

	logs, err := p.flow.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	item := logs.Items[0]
	assert.Equal(t, string(models.MessageTypeMissedCallResponse), item.MessageType)
	assert.Equal(t, models.DeliveryStatusQueued, item.Status)
	assert.Equal(t, result.MessageSID, item.ProviderMessageID)
	assert.Nil(t, item.FailureReason)
}

func TestNotificationFlow_FallbackGreeting(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	_, err := p.fixtures.CreateTestSubscriber(ctx, "Ravi", ricePhone, "Cotton")
	require.NoError(t, err)
	require.NoError(t, p.fixtures.SetRates(ctx, map[string]float64{"Rice": 2000}))

	_, err = p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)

	sent := p.gateway.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Hello Ravi, no crop rates available. Contact Hobli office: 1800-XXX-XXXX", sent[0].Request.Body)
}

func TestNotificationFlow_AnsweredCallIsIgnored(t *testing.T) {
	p := newPipeline(t)
	seedRiceFarmer(t, p)

	result, err := p.flow.HandleCallEvent(context.Background(), businessflow.NewCallEvent(ricePhone, "CA1", "completed", "45"))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.MessageSID)
	assert.Zero(t, p.gateway.CallCount())
	assert.Zero(t, logCount(t, p))
}

func TestNotificationFlow_Errors(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		seed     bool
		sendErr  error
		expectFn func(error) bool
	}{
		{name: "empty phone", phone: "  ", expectFn: businessflow.IsPhoneRequired},
		{name: "unknown farmer", phone: "+918888888888", seed: true, expectFn: businessflow.IsSubscriberNotFound},
		{
			name:     "gateway rejects",
			phone:    ricePhone,
			seed:     true,
			sendErr:  &services.GatewayError{Code: 21211, Message: "Invalid 'To' Phone Number", Status: 400},
			expectFn: businessflow.IsGatewaySendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t)
			if tt.seed {
				seedRiceFarmer(t, p)
			}
			p.gateway.SendErr = tt.sendErr

			result, err := p.flow.SendManual(context.Background(), &dto.SendSMSRequest{Phone: tt.phone})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, tt.expectFn(err), "unexpected error: %v", err)
			assert.Zero(t, logCount(t, p))

			var be *businessflow.BusinessError
			assert.True(t, errors.As(err, &be))
		})
	}
}

func TestNotificationFlow_FailedSendDoesNotSuppress(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	seedRiceFarmer(t, p)

	p.gateway.SendErr = errors.New("connection reset")
	_, err := p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.Error(t, err)

	p.gateway.SendErr = nil
	result, err := p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)
	assert.False(t, result.Suppressed)
}

func TestNotificationFlow_StatusCallback(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	seedRiceFarmer(t, p)

	result, err := p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)

	p.clock.Advance(time.Minute)
	updated, err := p.flow.HandleStatusCallback(ctx, &dto.StatusWebhookRequest{
		MessageSID:    result.MessageSID,
		MessageStatus: "undelivered",
		ErrorCode:     "30003",
		ErrorMessage:  "Unreachable destination handset",
	})
	require.NoError(t, err)
	assert.True(t, updated)

	logs, err := p.flow.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs.Items, 1)
	assert.Equal(t, "undelivered", logs.Items[0].Status)
	require.NotNil(t, logs.Items[0].FailureReason)
	assert.Equal(t, "30003: Unreachable destination handset", *logs.Items[0].FailureReason)
	require.NotNil(t, logs.Items[0].UpdatedAt)
	assert.True(t, p.clock.Now().Equal(*logs.Items[0].UpdatedAt))

	updated, err = p.flow.HandleStatusCallback(ctx, &dto.StatusWebhookRequest{MessageSID: result.MessageSID, MessageStatus: "delivered"})
	require.NoError(t, err)
	assert.True(t, updated)
	logs, err = p.flow.ListLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "delivered", logs.Items[0].Status)
	assert.Nil(t, logs.Items[0].FailureReason)
}

func TestNotificationFlow_UnknownStatusCallbackIsNoOp(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	seedRiceFarmer(t, p)

	_, err := p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)
	before, err := p.flow.ListLogs(ctx)
	require.NoError(t, err)

	updated, err := p.flow.HandleStatusCallback(ctx, &dto.StatusWebhookRequest{MessageSID: "SMunknown", MessageStatus: "delivered"})
	require.NoError(t, err)
	assert.False(t, updated)

	after, err := p.flow.ListLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNotificationFlow_ListLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	seedRiceFarmer(t, p)
	_, err := p.fixtures.CreateTestSubscriber(ctx, "Manju", "+917777777777", "Ragi")
	require.NoError(t, err)

	_, err = p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)
	p.clock.Advance(time.Minute)
	_, err = p.flow.HandleMissedCallReport(ctx, &dto.MissedCallReportRequest{Phone: "+917777777777"})
	require.NoError(t, err)

	logs, err := p.flow.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs.Items, 2)
	assert.Equal(t, "+917777777777", logs.Items[0].ToPhone)
	assert.Equal(t, string(models.MessageTypeAndroidMissedCall), logs.Items[0].MessageType)
	assert.Equal(t, "Ragi ₹3100/quintal. Token at Hobli office. Helpline: 1800-XXX-XXXX", logs.Items[0].Snippet)
	assert.Equal(t, ricePhone, logs.Items[1].ToPhone)
}

func TestNotificationFlow_ExportLogsExcel(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	filename, data, err := p.flow.ExportLogsExcel(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	assert.NotEmpty(t, data)

	seedRiceFarmer(t, p)
	_, err = p.flow.SendManual(ctx, &dto.SendSMSRequest{Phone: ricePhone})
	require.NoError(t, err)

	_, data, err = p.flow.ExportLogsExcel(ctx)
	require.NoError(t, err)

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	assert.Equal(t, []string{string(models.MessageTypeManualSend)}, xl.GetSheetList())
	rows, err := xl.GetRows(string(models.MessageTypeManualSend))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "to_phone", rows[0][1])
	assert.Equal(t, ricePhone, rows[1][1])
	assert.Equal(t, models.DeliveryStatusQueued, rows[1][4])
}
