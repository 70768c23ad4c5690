package repository

import (
	"context"
	"fmt"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// SubscriberRepositoryImpl implements SubscriberRepository
type SubscriberRepositoryImpl struct {
	*BaseRepository[models.Subscriber]
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(store KVStore) SubscriberRepository {
	return &SubscriberRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Subscriber](store, SubscriberKeyPrefix),
	}
}

// PhoneIndex returns the survey number indexed for phone, exactly as given
func (r *SubscriberRepositoryImpl) PhoneIndex(ctx context.Context, phone string) (*models.PhoneIndex, error) {
	return getJSON[models.PhoneIndex](ctx, r.Store, PhoneIndexKeyPrefix+phone)
}

// SaveWithIndex writes the farmer record and indexes it under the phone without a leading plus
func (r *SubscriberRepositoryImpl) SaveWithIndex(ctx context.Context, subscriber *models.Subscriber) error {
	if subscriber.SurveyNumber == "" {
		return fmt.Errorf("subscriber survey number is required")
	}
	if err := r.Save(ctx, subscriber.SurveyNumber, subscriber, 0); err != nil {
		return err
	}
	if subscriber.Phone == "" {
		return nil
	}
	return setJSON(ctx, r.Store, PhoneIndexKeyPrefix+utils.NormalizePhone(subscriber.Phone), models.PhoneIndex{SurveyNumber: subscriber.SurveyNumber}, 0)
}
