// Package scheduler runs periodic record store maintenance
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
)

const pingTimeout = 3 * time.Second

var (
	recordStoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "record_store_up",
			Help: "Whether the last record store ping succeeded (1) or failed (0)",
		},
	)

	expiredRecordsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "record_store_expired_deleted_total",
			Help: "Rows removed by the expired record sweep",
		},
	)
)

// ExpiredRecordSweeper is implemented by stores that keep expired rows until swept
type ExpiredRecordSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// RunResult summarizes one maintenance pass
type RunResult struct {
	Healthy bool
	Swept   int64
}

// MaintenanceScheduler pings the record store and sweeps expired rows on an interval
type MaintenanceScheduler struct {
	store    repository.KVStore
	sweeper  ExpiredRecordSweeper
	logger   *log.Logger
	interval time.Duration

	healthy bool
}

// NewMaintenanceScheduler creates a scheduler. sweeper may be nil for stores that expire keys themselves.
func NewMaintenanceScheduler(store repository.KVStore, sweeper ExpiredRecordSweeper, logger *log.Logger, interval time.Duration) *MaintenanceScheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = log.New(log.Writer(), "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
	}
	return &MaintenanceScheduler{
		store:    store,
		sweeper:  sweeper,
		logger:   logger,
		interval: interval,
		healthy:  true,
	}
}

// Start launches the maintenance loop in a background goroutine and returns a stop function
func (s *MaintenanceScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()

	return cancel
}

// RunOnce performs a single health check and, when the store is reachable, a sweep
func (s *MaintenanceScheduler) RunOnce(ctx context.Context) RunResult {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := s.store.Ping(pingCtx)
	cancel()

	if err != nil {
		recordStoreUp.Set(0)
		s.logger.Printf("record store healthcheck failed: %v", err)
		s.healthy = false
		return RunResult{Healthy: false}
	}

	recordStoreUp.Set(1)
	if !s.healthy {
		s.logger.Println("record store reachable again")
	}
	s.healthy = true

	result := RunResult{Healthy: true}
	if s.sweeper == nil {
		return result
	}

	n, err := s.sweeper.DeleteExpired(ctx)
	if err != nil {
		s.logger.Printf("expired record sweep failed: %v", err)
		return result
	}
	if n > 0 {
		expiredRecordsDeleted.Add(float64(n))
		s.logger.Printf("expired record sweep removed %d rows", n)
	}
	result.Swept = n
	return result
}
