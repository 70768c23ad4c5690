package businessflow

import (
	"context"
	"fmt"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
)

// RateReader turns the live rate snapshot into price fragments for a farmer
type RateReader interface {
	Fragments(ctx context.Context, subscriber *models.Subscriber) ([]string, error)
}

// RateReaderImpl implements RateReader
type RateReaderImpl struct {
	rateRepo repository.RateRepository
}

// NewRateReader creates a new rate reader
func NewRateReader(rateRepo repository.RateRepository) RateReader {
	return &RateReaderImpl{rateRepo: rateRepo}
}

// Fragments returns "{crop} ₹{rate}/{unit}" for each held crop with a non-zero rate,
// in holding order
func (r *RateReaderImpl) Fragments(ctx context.Context, subscriber *models.Subscriber) ([]string, error) {
	cropTypes := subscriber.ActiveCropTypes()
	if len(cropTypes) == 0 {
		return nil, nil
	}

	snapshot, err := r.rateRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read crop rates: %w", err)
	}

	return RateFragments(cropTypes, snapshot), nil
}

// RateFragments formats the rates for cropTypes found in snapshot
func RateFragments(cropTypes []string, snapshot models.RateSnapshot) []string {
	fragments := make([]string, 0, len(cropTypes))
	for _, cropType := range cropTypes {
		rate, ok := snapshot[cropType]
		if !ok || rate.Rate == 0 {
			continue
		}
		fragments = append(fragments, fmt.Sprintf("%s ₹%s/%s", cropType, rate.FormatRate(), rate.UnitOrDefault()))
	}
	return fragments
}
