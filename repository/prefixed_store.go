package repository

import (
	"context"
	"strings"
	"time"
)

// PrefixedStore namespaces every key of an underlying store
type PrefixedStore struct {
	inner  KVStore
	prefix string
}

// WithKeyPrefix wraps store so that all keys live under prefix. An empty prefix returns store unchanged.
func WithKeyPrefix(store KVStore, prefix string) KVStore {
	if prefix == "" {
		return store
	}
	return &PrefixedStore{inner: store, prefix: prefix}
}

func (s *PrefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *PrefixedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, value, ttl)
}

func (s *PrefixedStore) ScanPrefix(ctx context.Context, prefix string) ([]KVPair, error) {
	pairs, err := s.inner.ScanPrefix(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i := range pairs {
		pairs[i].Key = strings.TrimPrefix(pairs[i].Key, s.prefix)
	}
	return pairs, nil
}

func (s *PrefixedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *PrefixedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}
