package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
)

type flakyStore struct {
	repository.KVStore
	pingErr error
}

func (s *flakyStore) Ping(context.Context) error {
	return s.pingErr
}

type countingSweeper struct {
	calls   int
	deleted int64
	err     error
}

func (s *countingSweeper) DeleteExpired(context.Context) (int64, error) {
	s.calls++
	return s.deleted, s.err
}

func newTestScheduler(store repository.KVStore, sweeper ExpiredRecordSweeper) (*MaintenanceScheduler, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewMaintenanceScheduler(store, sweeper, log.New(&buf, "", 0), time.Minute), &buf
}

func TestMaintenanceScheduler_RunOnce(t *testing.T) {
	tests := []struct {
		name          string
		pingErr       error
		sweeper       *countingSweeper
		expected      RunResult
		expectedCalls int
		logContains   string
	}{
		{
			name:     "healthy store without sweeper",
			expected: RunResult{Healthy: true},
		},
		{
			name:          "healthy store sweeps",
			sweeper:       &countingSweeper{deleted: 3},
			expected:      RunResult{Healthy: true, Swept: 3},
			expectedCalls: 1,
			logContains:   "removed 3 rows",
		},
		{
			name:          "unreachable store skips sweep",
			pingErr:       errors.New("connection refused"),
			sweeper:       &countingSweeper{deleted: 3},
			expected:      RunResult{Healthy: false},
			expectedCalls: 0,
			logContains:   "healthcheck failed: connection refused",
		},
		{
			name:          "sweep failure keeps store healthy",
			sweeper:       &countingSweeper{err: errors.New("timeout")},
			expected:      RunResult{Healthy: true},
			expectedCalls: 1,
			logContains:   "sweep failed: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &flakyStore{KVStore: repository.NewMemoryKVStore(time.Minute), pingErr: tt.pingErr}

			var sweeper ExpiredRecordSweeper
			if tt.sweeper != nil {
				sweeper = tt.sweeper
			}
			s, logs := newTestScheduler(store, sweeper)

			assert.Equal(t, tt.expected, s.RunOnce(context.Background()))
			if tt.sweeper != nil {
				assert.Equal(t, tt.expectedCalls, tt.sweeper.calls)
			}
			if tt.logContains != "" {
				assert.Contains(t, logs.String(), tt.logContains)
			}
		})
	}
}

func TestMaintenanceScheduler_LogsRecovery(t *testing.T) {
	store := &flakyStore{KVStore: repository.NewMemoryKVStore(time.Minute), pingErr: errors.New("down")}
	s, logs := newTestScheduler(store, nil)

	s.RunOnce(context.Background())
	store.pingErr = nil
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("reachable again")))
}

func TestMaintenanceScheduler_StartStop(t *testing.T) {
	s, _ := newTestScheduler(repository.NewMemoryKVStore(time.Minute), nil)
	stop := s.Start(context.Background())
	stop()
}
