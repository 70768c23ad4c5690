package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// BaseRepository stores JSON documents of type T under a fixed key prefix
type BaseRepository[T any] struct {
	Store  KVStore
	Prefix string
}

// NewBaseRepository creates a new base repository instance
func NewBaseRepository[T any](store KVStore, prefix string) *BaseRepository[T] {
	return &BaseRepository[T]{
		Store:  store,
		Prefix: prefix,
	}
}

func (r *BaseRepository[T]) key(id string) string {
	return r.Prefix + id
}

// ByID retrieves a document by id, returning nil, nil when it does not exist
func (r *BaseRepository[T]) ByID(ctx context.Context, id string) (*T, error) {
	return getJSON[T](ctx, r.Store, r.key(id))
}

// Save overwrites the document stored under id
func (r *BaseRepository[T]) Save(ctx context.Context, id string, entity *T, ttl time.Duration) error {
	return setJSON(ctx, r.Store, r.key(id), entity, ttl)
}

// List returns every document under the prefix. Undecodable values are skipped.
func (r *BaseRepository[T]) List(ctx context.Context) ([]*T, error) {
	pairs, err := r.Store.ScanPrefix(ctx, r.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", r.Prefix, err)
	}

	entities := make([]*T, 0, len(pairs))
	for _, p := range pairs {
		var entity T
		if err := json.Unmarshal(p.Value, &entity); err != nil {
			continue
		}
		entities = append(entities, &entity)
	}
	return entities, nil
}

func getJSON[T any](ctx context.Context, store KVStore, key string) (*T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	if raw == nil {
		return nil, nil
	}

	var entity T
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return &entity, nil
}

func setJSON(ctx context.Context, store KVStore, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	if err := store.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}
