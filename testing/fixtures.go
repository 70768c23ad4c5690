package testing

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// TestFixtures seeds farmer and rate records into a record store
type TestFixtures struct {
	Store repository.KVStore
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(store repository.KVStore) *TestFixtures {
	return &TestFixtures{Store: store}
}

// NewMemoryFixtures returns fixtures over a fresh in-process store
func NewMemoryFixtures() *TestFixtures {
	return NewTestFixtures(repository.NewMemoryKVStore(time.Minute))
}

// RandomPhone returns an Indian mobile number in +91 form
func RandomPhone() string {
	return fmt.Sprintf("+919%09d", rand.Intn(1000000000))
}

// CreateTestSubscriber stores a farmer with one holding per crop type and indexes its phone
func (tf *TestFixtures) CreateTestSubscriber(ctx context.Context, name, phone string, cropTypes ...string) (*models.Subscriber, error) {
	now := utils.UTCNow().Format(time.RFC3339)
	subscriber := &models.Subscriber{
		ID:           fmt.Sprintf("farmer_%d", time.Now().UnixNano()),
		SurveyNumber: fmt.Sprintf("SY-%06d", rand.Intn(1000000)),
		Name:         name,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, cropType := range cropTypes {
		subscriber.Crops = append(subscriber.Crops, models.CropHolding{
			ID:          fmt.Sprintf("crop_%d", i+1),
			CropType:    cropType,
			Quantity:    10,
			GrowthDays:  120,
			LastUpdated: now,
		})
	}

	if err := repository.NewSubscriberRepository(tf.Store).SaveWithIndex(ctx, subscriber); err != nil {
		return nil, fmt.Errorf("failed to create test subscriber: %w", err)
	}
	return subscriber, nil
}

// CreateLegacySubscriber stores a farmer using the older single crop field without a phone index
func (tf *TestFixtures) CreateLegacySubscriber(ctx context.Context, name, phone, cropType string) (*models.Subscriber, error) {
	subscriber := &models.Subscriber{
		ID:           fmt.Sprintf("farmer_%d", time.Now().UnixNano()),
		SurveyNumber: fmt.Sprintf("SY-%06d", rand.Intn(1000000)),
		Name:         name,
		Phone:        phone,
		Crop:         &models.CropHolding{CropType: cropType, Quantity: 5},
	}

	repo := repository.NewSubscriberRepository(tf.Store)
	if err := repo.Save(ctx, subscriber.SurveyNumber, subscriber, 0); err != nil {
		return nil, fmt.Errorf("failed to create legacy subscriber: %w", err)
	}
	return subscriber, nil
}

// SetRates replaces the crop rate snapshot with the given rupee-per-quintal values
func (tf *TestFixtures) SetRates(ctx context.Context, rates map[string]float64) error {
	snapshot := make(models.RateSnapshot, len(rates))
	for cropType, rate := range rates {
		snapshot[cropType] = models.CropRate{Rate: rate, Unit: models.DefaultRateUnit}
	}
	return repository.NewRateRepository(tf.Store).SaveSnapshot(ctx, snapshot)
}
