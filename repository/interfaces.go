// Package repository provides data access layer implementations and interfaces for the record store
package repository

import (
	"context"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
)

// Record store key layout
const (
	SubscriberKeyPrefix      = "farmer:survey:"
	PhoneIndexKeyPrefix      = "farmer:phone:"
	CropRatesKey             = "crop:rates"
	DedupeMarkerKeyPrefix    = "sms:last:"
	NotificationLogKeyPrefix = "sms:log:"
	RelaySessionKeyPrefix    = "proxy:session:"
)

// KVPair is one result of a prefix scan
type KVPair struct {
	Key   string
	Value []byte
}

// KVStore is the key-value record store. Get returns nil, nil for a missing key.
// A ttl of zero stores the value without expiry.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	ScanPrefix(ctx context.Context, prefix string) ([]KVPair, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Repository is the generic JSON document repository over a key prefix
type Repository[T any] interface {
	ByID(ctx context.Context, id string) (*T, error)
	Save(ctx context.Context, id string, entity *T, ttl time.Duration) error
	List(ctx context.Context) ([]*T, error)
}

// SubscriberRepository reads farmer records and their phone index
type SubscriberRepository interface {
	Repository[models.Subscriber]
	PhoneIndex(ctx context.Context, phone string) (*models.PhoneIndex, error)
	SaveWithIndex(ctx context.Context, subscriber *models.Subscriber) error
}

// RateRepository reads the crop rate snapshot
type RateRepository interface {
	Snapshot(ctx context.Context) (models.RateSnapshot, error)
	SaveSnapshot(ctx context.Context, rates models.RateSnapshot) error
}

// DedupeMarkerRepository stores the last successful send per phone
type DedupeMarkerRepository interface {
	ByPhone(ctx context.Context, phone string) (*models.DedupeMarker, error)
	Save(ctx context.Context, phone string, marker *models.DedupeMarker, ttl time.Duration) error
}

// NotificationLogRepository stores delivery log entries
type NotificationLogRepository interface {
	Repository[models.NotificationLogEntry]
	ByProviderMessageID(ctx context.Context, providerMessageID string) (*models.NotificationLogEntry, error)
}

// RelaySessionRepository stores relay sessions
type RelaySessionRepository interface {
	Repository[models.RelaySession]
}
