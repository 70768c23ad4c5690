package businessflow

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// DeliveryTracker records outbound messages and applies gateway status callbacks
type DeliveryTracker interface {
	Record(ctx context.Context, toPhone, providerMessageID string, messageType models.MessageType, body string) (*models.NotificationLogEntry, error)
	UpdateStatus(ctx context.Context, providerMessageID, status, errorCode, errorMessage string) (bool, error)
	List(ctx context.Context) ([]*models.NotificationLogEntry, error)
}

// DeliveryTrackerImpl implements DeliveryTracker
type DeliveryTrackerImpl struct {
	logRepo repository.NotificationLogRepository
	dedupe  DedupeGuard
	now     utils.Clock
}

// NewDeliveryTracker creates a new delivery tracker
func NewDeliveryTracker(logRepo repository.NotificationLogRepository, dedupe DedupeGuard, now utils.Clock) DeliveryTracker {
	if now == nil {
		now = utils.UTCNow
	}
	return &DeliveryTrackerImpl{
		logRepo: logRepo,
		dedupe:  dedupe,
		now:     now,
	}
}

// Record writes a queued log entry and then marks the number as recently messaged
func (t *DeliveryTrackerImpl) Record(ctx context.Context, toPhone, providerMessageID string, messageType models.MessageType, body string) (*models.NotificationLogEntry, error) {
	entry := &models.NotificationLogEntry{
		ID:                "msg_" + uuid.NewString(),
		ToPhone:           toPhone,
		ProviderMessageID: providerMessageID,
		MessageType:       messageType,
		Snippet:           utils.TruncateRunes(body, models.SnippetLength),
		Status:            models.DeliveryStatusQueued,
		CreatedAt:         t.now(),
	}

	if err := t.logRepo.Save(ctx, entry.ID, entry, 0); err != nil {
		return nil, fmt.Errorf("failed to write notification log: %w", err)
	}

	if err := t.dedupe.MarkSent(ctx, toPhone); err != nil {
		return entry, err
	}

	return entry, nil
}

// UpdateStatus merges a delivery report into the matching entry. An unknown
// message id is not an error and changes nothing.
func (t *DeliveryTrackerImpl) UpdateStatus(ctx context.Context, providerMessageID, status, errorCode, errorMessage string) (bool, error) {
	entry, err := t.logRepo.ByProviderMessageID(ctx, providerMessageID)
	if err != nil {
		return false, fmt.Errorf("failed to find notification log: %w", err)
	}
	if entry == nil {
		deliveryStatusUpdatesTotal.WithLabelValues(status, "false").Inc()
		log.Printf("Status callback for unknown message %s (%s)", providerMessageID, status)
		return false, nil
	}

	if status != "" {
		entry.Status = status
	}
	if errorCode != "" {
		reason := fmt.Sprintf("%s: %s", errorCode, errorMessage)
		entry.FailureReason = &reason
	} else {
		entry.FailureReason = nil
	}
	updatedAt := t.now()
	entry.UpdatedAt = &updatedAt

	if err := t.logRepo.Save(ctx, entry.ID, entry, 0); err != nil {
		return false, fmt.Errorf("failed to update notification log: %w", err)
	}

	deliveryStatusUpdatesTotal.WithLabelValues(entry.Status, "true").Inc()
	return true, nil
}

// List returns all log entries, newest first
func (t *DeliveryTrackerImpl) List(ctx context.Context) ([]*models.NotificationLogEntry, error) {
	entries, err := t.logRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
