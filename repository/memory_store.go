package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryKVStore keeps records in process memory. Used for development and tests.
type MemoryKVStore struct {
	c *gocache.Cache
}

// NewMemoryKVStore creates an in-process store that sweeps expired keys every cleanupInterval
func NewMemoryKVStore(cleanupInterval time.Duration) *MemoryKVStore {
	return &MemoryKVStore{c: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (s *MemoryKVStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, nil
	}
	return cloneBytes(v.([]byte)), nil
}

func (s *MemoryKVStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	s.c.Set(key, cloneBytes(value), ttl)
	return nil
}

func (s *MemoryKVStore) ScanPrefix(_ context.Context, prefix string) ([]KVPair, error) {
	var pairs []KVPair
	for k, item := range s.c.Items() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		pairs = append(pairs, KVPair{Key: k, Value: cloneBytes(item.Object.([]byte))})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs, nil
}

func (s *MemoryKVStore) Delete(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}

func (s *MemoryKVStore) Ping(context.Context) error {
	return nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
