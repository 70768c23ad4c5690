package repository

import (
	"context"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

// NotificationLogRepositoryImpl implements NotificationLogRepository
type NotificationLogRepositoryImpl struct {
	*BaseRepository[models.NotificationLogEntry]
}

// NewNotificationLogRepository creates a new notification log repository
func NewNotificationLogRepository(store KVStore) NotificationLogRepository {
	return &NotificationLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.NotificationLogEntry](store, NotificationLogKeyPrefix),
	}
}

// ByProviderMessageID scans the log for the entry created for a gateway message.
// Returns nil, nil when no entry matches.
func (r *NotificationLogRepositoryImpl) ByProviderMessageID(ctx context.Context, providerMessageID string) (*models.NotificationLogEntry, error) {
	if providerMessageID == "" {
		return nil, nil
	}
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ProviderMessageID == providerMessageID {
			return e, nil
		}
	}
	return nil, nil
}
