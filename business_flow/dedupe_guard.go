package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// DedupeGuard suppresses repeat messages to the same number inside a fixed window.
// Numbers are compared in normalized form, so "+91..." and "91..." share a marker.
// The check and the mark are separate calls, so two concurrent requests for one
// number can both pass the check.
type DedupeGuard interface {
	ShouldSuppress(ctx context.Context, phone string) (bool, error)
	MarkSent(ctx context.Context, phone string) error
	Window() time.Duration
}

// DedupeGuardImpl implements DedupeGuard
type DedupeGuardImpl struct {
	markerRepo repository.DedupeMarkerRepository
	window     time.Duration
	now        utils.Clock
}

// NewDedupeGuard creates a dedupe guard. A nil clock uses the wall clock.
func NewDedupeGuard(markerRepo repository.DedupeMarkerRepository, window time.Duration, now utils.Clock) DedupeGuard {
	if window <= 0 {
		window = utils.DefaultDedupeWindow
	}
	if now == nil {
		now = utils.UTCNow
	}
	return &DedupeGuardImpl{
		markerRepo: markerRepo,
		window:     window,
		now:        now,
	}
}

// ShouldSuppress reports whether a message was sent to phone within the window.
// It never writes.
func (g *DedupeGuardImpl) ShouldSuppress(ctx context.Context, phone string) (bool, error) {
	marker, err := g.markerRepo.ByPhone(ctx, utils.NormalizePhone(phone))
	if err != nil {
		return false, fmt.Errorf("failed to read dedupe marker: %w", err)
	}
	if marker == nil {
		return false, nil
	}
	return g.now().UnixMilli()-marker.TimestampMs < g.window.Milliseconds(), nil
}

// MarkSent records a successful send, overwriting any previous marker
func (g *DedupeGuardImpl) MarkSent(ctx context.Context, phone string) error {
	marker := &models.DedupeMarker{TimestampMs: g.now().UnixMilli()}
	if err := g.markerRepo.Save(ctx, utils.NormalizePhone(phone), marker, g.window); err != nil {
		return fmt.Errorf("failed to write dedupe marker: %w", err)
	}
	return nil
}

func (g *DedupeGuardImpl) Window() time.Duration {
	return g.window
}
