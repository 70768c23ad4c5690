package repository

import (
	"context"
	"testing"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore(time.Minute)

	val, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set(ctx, "sms:log:1", []byte(`{"id":"1"}`), 0))
	require.NoError(t, store.Set(ctx, "sms:log:2", []byte(`{"id":"2"}`), 0))
	require.NoError(t, store.Set(ctx, "sms:last:+91", []byte(`{"timestamp":1}`), 0))

	pairs, err := store.ScanPrefix(ctx, "sms:log:")
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "sms:log:1", pairs[0].Key)
	assert.Equal(t, "sms:log:2", pairs[1].Key)

	require.NoError(t, store.Delete(ctx, "sms:log:1"))
	pairs, err = store.ScanPrefix(ctx, "sms:log:")
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestMemoryKVStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore(time.Minute)

	require.NoError(t, store.Set(ctx, "short", []byte("x"), 20*time.Millisecond))
	val, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), val)

	time.Sleep(40 * time.Millisecond)

	val, err = store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, val)

	pairs, err := store.ScanPrefix(ctx, "sh")
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestPrefixedStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryKVStore(time.Minute)
	store := WithKeyPrefix(inner, "dev:")

	require.NoError(t, store.Set(ctx, "crop:rates", []byte("{}"), 0))

	raw, err := inner.Get(ctx, "dev:crop:rates")
	require.NoError(t, err)
	assert.NotNil(t, raw)

	pairs, err := store.ScanPrefix(ctx, "crop:")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "crop:rates", pairs[0].Key)

	assert.Same(t, inner, WithKeyPrefix(inner, "").(*MemoryKVStore))
}

func TestSubscriberRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore(time.Minute)
	repo := NewSubscriberRepository(store)

	subscriber := &models.Subscriber{SurveyNumber: "SY-1", Name: "Ravi", Phone: "+919999999999"}
	require.NoError(t, repo.SaveWithIndex(ctx, subscriber))

	index, err := repo.PhoneIndex(ctx, "919999999999")
	require.NoError(t, err)
	require.NotNil(t, index)
	assert.Equal(t, "SY-1", index.SurveyNumber)

	got, err := repo.ByID(ctx, "SY-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ravi", got.Name)

	missing, err := repo.ByID(ctx, "SY-2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, repo.SaveWithIndex(ctx, &models.Subscriber{Phone: "1"}))
}

func TestRateRepositorySnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKVStore(time.Minute)
	repo := NewRateRepository(store)

	snapshot, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	doc := `{"Rice":{"rate":2000},"Ragi":{"rate":"3100.5","unit":"quintal"},"updatedAt":"2024-06-01T00:00:00Z"}`
	require.NoError(t, store.Set(ctx, CropRatesKey, []byte(doc), 0))

	snapshot, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 2)
	assert.Equal(t, 2000.0, snapshot["Rice"].Rate)
	assert.Equal(t, 3100.5, snapshot["Ragi"].Rate)
}

func TestNotificationLogRepositoryByProviderMessageID(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationLogRepository(NewMemoryKVStore(time.Minute))

	entry := &models.NotificationLogEntry{ID: "msg_1", ProviderMessageID: "SM1", Status: models.DeliveryStatusQueued}
	require.NoError(t, repo.Save(ctx, entry.ID, entry, 0))

	got, err := repo.ByProviderMessageID(ctx, "SM1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "msg_1", got.ID)

	got, err = repo.ByProviderMessageID(ctx, "SM2")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.ByProviderMessageID(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}
