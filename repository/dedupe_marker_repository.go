package repository

import (
	"context"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

// DedupeMarkerRepositoryImpl implements DedupeMarkerRepository
type DedupeMarkerRepositoryImpl struct {
	store KVStore
}

// NewDedupeMarkerRepository creates a new dedupe marker repository
func NewDedupeMarkerRepository(store KVStore) DedupeMarkerRepository {
	return &DedupeMarkerRepositoryImpl{store: store}
}

func (r *DedupeMarkerRepositoryImpl) ByPhone(ctx context.Context, phone string) (*models.DedupeMarker, error) {
	return getJSON[models.DedupeMarker](ctx, r.store, DedupeMarkerKeyPrefix+phone)
}

func (r *DedupeMarkerRepositoryImpl) Save(ctx context.Context, phone string, marker *models.DedupeMarker, ttl time.Duration) error {
	return setJSON(ctx, r.store, DedupeMarkerKeyPrefix+phone, marker, ttl)
}
