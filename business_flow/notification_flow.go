package businessflow

import (
	"context"
	"log"
	"strings"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

// NotificationFlow turns inbound call signals and manual requests into rate SMS
type NotificationFlow interface {
	HandleCallEvent(ctx context.Context, event models.CallEvent) (*dto.NotificationResult, error)
	SendManual(ctx context.Context, request *dto.SendSMSRequest) (*dto.NotificationResult, error)
	HandleMissedCallReport(ctx context.Context, request *dto.MissedCallReportRequest) (*dto.NotificationResult, error)
	HandleStatusCallback(ctx context.Context, request *dto.StatusWebhookRequest) (bool, error)
	ListLogs(ctx context.Context) (*dto.NotificationLogListResponse, error)
	ExportLogsExcel(ctx context.Context) (string, []byte, error)
}

// NotificationFlowImpl implements the notification pipeline
type NotificationFlowImpl struct {
	dedupe     DedupeGuard
	resolver   SubscriberResolver
	rateReader RateReader
	composer   MessageComposer
	dispatcher services.DispatchClient
	tracker    DeliveryTracker
}

// NewNotificationFlow creates a new notification flow instance
func NewNotificationFlow(
	dedupe DedupeGuard,
	resolver SubscriberResolver,
	rateReader RateReader,
	composer MessageComposer,
	dispatcher services.DispatchClient,
	tracker DeliveryTracker,
) NotificationFlow {
	return &NotificationFlowImpl{
		dedupe:     dedupe,
		resolver:   resolver,
		rateReader: rateReader,
		composer:   composer,
		dispatcher: dispatcher,
		tracker:    tracker,
	}
}

// HandleCallEvent runs the pipeline for a missed call and ignores answered ones
func (nf *NotificationFlowImpl) HandleCallEvent(ctx context.Context, event models.CallEvent) (*dto.NotificationResult, error) {
	log.Printf("Incoming call: %s, Status: %s, Duration: %ds", event.FromNumber, event.RawStatus, event.DurationSeconds)

	if !IsMissedCall(event.RawStatus, event.DurationSeconds) {
		notificationsTotal.WithLabelValues(string(models.MessageTypeMissedCallResponse), "answered").Inc()
		return &dto.NotificationResult{Success: true, Message: "Call answered, no SMS sent"}, nil
	}

	return nf.notify(ctx, event.FromNumber, models.MessageTypeMissedCallResponse)
}

// SendManual sends rates to a farmer on request from the dashboard
func (nf *NotificationFlowImpl) SendManual(ctx context.Context, request *dto.SendSMSRequest) (*dto.NotificationResult, error) {
	log.Printf("Manual SMS request for phone: %s", request.Phone)
	return nf.notify(ctx, request.Phone, models.MessageTypeManualSend)
}

// HandleMissedCallReport runs the pipeline for a call reported by the field phone
func (nf *NotificationFlowImpl) HandleMissedCallReport(ctx context.Context, request *dto.MissedCallReportRequest) (*dto.NotificationResult, error) {
	log.Printf("Call listener reported missed call from: %s", request.Phone)
	return nf.notify(ctx, request.Phone, models.MessageTypeAndroidMissedCall)
}

// HandleStatusCallback applies a delivery report; unknown messages return false
func (nf *NotificationFlowImpl) HandleStatusCallback(ctx context.Context, request *dto.StatusWebhookRequest) (bool, error) {
	updated, err := nf.tracker.UpdateStatus(ctx, request.MessageSID, request.MessageStatus, request.ErrorCode, request.ErrorMessage)
	if err != nil {
		return false, NewBusinessError("STATUS_UPDATE_FAILED", "Failed to update delivery status", err)
	}
	if updated {
		log.Printf("SMS status updated: %s -> %s", request.MessageSID, request.MessageStatus)
	}
	return updated, nil
}

// ListLogs returns the notification log, newest first
func (nf *NotificationFlowImpl) ListLogs(ctx context.Context) (*dto.NotificationLogListResponse, error) {
	entries, err := nf.tracker.List(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_LOGS_FAILED", "Failed to list notification logs", err)
	}

	items := make([]dto.NotificationLogItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToNotificationLogItem(e))
	}
	return &dto.NotificationLogListResponse{Items: items, Total: len(items)}, nil
}

// notify is the shared pipeline: dedupe, resolve, compose, dispatch, record
func (nf *NotificationFlowImpl) notify(ctx context.Context, phone string, messageType models.MessageType) (*dto.NotificationResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, NewBusinessError("PHONE_REQUIRED", "Phone number is required", ErrPhoneRequired)
	}

	suppress, err := nf.dedupe.ShouldSuppress(ctx, phone)
	if err != nil {
		return nil, NewBusinessError("DEDUPE_CHECK_FAILED", "Failed to check recent messages", err)
	}
	if suppress {
		log.Printf("SMS already sent to %s recently, skipping", phone)
		notificationsTotal.WithLabelValues(string(messageType), "suppressed").Inc()
		return &dto.NotificationResult{Success: true, Message: "SMS already sent recently", Suppressed: true}, nil
	}

	subscriber, err := nf.resolver.Resolve(ctx, phone)
	if err != nil {
		if IsSubscriberNotFound(err) {
			log.Printf("Farmer not found for phone: %s", phone)
			notificationsTotal.WithLabelValues(string(messageType), "not_found").Inc()
			return nil, NewBusinessError("FARMER_NOT_FOUND", "Farmer not found for this phone number", err)
		}
		return nil, NewBusinessError("FARMER_LOOKUP_FAILED", "Failed to look up farmer", err)
	}

	fragments, err := nf.rateReader.Fragments(ctx, subscriber)
	if err != nil {
		return nil, NewBusinessError("RATES_UNAVAILABLE", "Failed to read crop rates", err)
	}

	body := nf.composer.Compose(subscriber, fragments)

	result, err := nf.dispatcher.Send(ctx, phone, body)
	if err != nil {
		notificationsTotal.WithLabelValues(string(messageType), "failed").Inc()
		return nil, NewBusinessError("SMS_SEND_FAILED", "Failed to send SMS", err)
	}

	out := &dto.NotificationResult{
		Success:    true,
		Message:    "SMS sent successfully",
		MessageSID: result.ProviderMessageID,
		FarmerName: subscriber.Name,
	}

	// The message is already out; a failed write is logged, not returned
	entry, err := nf.tracker.Record(ctx, phone, result.ProviderMessageID, messageType, body)
	if err != nil {
		log.Printf("Failed to record SMS %s to %s: %v", result.ProviderMessageID, phone, err)
	}
	if entry != nil {
		out.LogID = entry.ID
	}

	notificationsTotal.WithLabelValues(string(messageType), "sent").Inc()
	log.Printf("SMS sent to %s: %s", phone, result.ProviderMessageID)
	return out, nil
}

// ToNotificationLogItem converts a log entry for API responses
func ToNotificationLogItem(e *models.NotificationLogEntry) dto.NotificationLogItem {
	return dto.NotificationLogItem{
		ID:                e.ID,
		ToPhone:           e.ToPhone,
		ProviderMessageID: e.ProviderMessageID,
		MessageType:       string(e.MessageType),
		Snippet:           e.Snippet,
		Status:            e.Status,
		FailureReason:     e.FailureReason,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
