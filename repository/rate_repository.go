package repository

import (
	"context"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

// RateRepositoryImpl implements RateRepository
type RateRepositoryImpl struct {
	store KVStore
}

// NewRateRepository creates a new crop rate repository
func NewRateRepository(store KVStore) RateRepository {
	return &RateRepositoryImpl{store: store}
}

// Snapshot returns the current rates; a missing document is an empty snapshot
func (r *RateRepositoryImpl) Snapshot(ctx context.Context) (models.RateSnapshot, error) {
	snapshot, err := getJSON[models.RateSnapshot](ctx, r.store, CropRatesKey)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return models.RateSnapshot{}, nil
	}
	return *snapshot, nil
}

func (r *RateRepositoryImpl) SaveSnapshot(ctx context.Context, rates models.RateSnapshot) error {
	return setJSON(ctx, r.store, CropRatesKey, rates, 0)
}
